// Package songs lists the charts available to play.
package songs

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jsphweid/notefall/chart"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/util"
)

var ErrNotFound = errors.New("song not found")

type Song struct {
	Name string `json:"name"`
	Path string `json:"-"`
}

// Sort orders songs by name, ignoring case. Equal names keep their order.
func Sort(list []Song) []Song {
	res := append([]Song(nil), list...)
	sort.SliceStable(res, func(i, j int) bool {
		return strings.ToLower(res[i].Name) < strings.ToLower(res[j].Name)
	})
	return res
}

type Catalog struct {
	Dir   string
	Songs []Song
}

// Scan collects every chart under dir.
func Scan(dir string) (Catalog, error) {
	paths, err := util.GatherPaths(dir, []string{".csv"}, 0)
	if err != nil {
		return Catalog{}, fmt.Errorf("scanning %s: %w", dir, err)
	}
	list := make([]Song, 0, len(paths))
	for _, p := range paths {
		base := filepath.Base(p)
		list = append(list, Song{Name: strings.TrimSuffix(base, filepath.Ext(base)), Path: p})
	}
	return Catalog{Dir: dir, Songs: Sort(list)}, nil
}

func (c Catalog) Names() []string {
	names := make([]string, len(c.Songs))
	for i, s := range c.Songs {
		names[i] = s.Name
	}
	return names
}

// Find prefers an exact name and falls back to a case-insensitive match.
func (c Catalog) Find(name string) (Song, error) {
	for _, s := range c.Songs {
		if s.Name == name {
			return s, nil
		}
	}
	for _, s := range c.Songs {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Song{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (c Catalog) Load(name string) ([]model.Music, error) {
	s, err := c.Find(name)
	if err != nil {
		return nil, err
	}
	return chart.ReadFile(s.Path)
}
