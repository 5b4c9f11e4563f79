package cmd

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/notefall/chart"
	"github.com/jsphweid/notefall/config"
	"github.com/jsphweid/notefall/constants"
	"github.com/jsphweid/notefall/engine"
	"github.com/jsphweid/notefall/model"
	"github.com/jsphweid/notefall/replay"
	"github.com/jsphweid/notefall/songs"
)

var addr string

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the song catalogue and headless replays over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s := &Server{ChartDir: constants.GetChartDir(), Config: cfg}
		slog.Info("serving", "addr", addr, "charts", s.ChartDir)
		return http.ListenAndServe(addr, cors.Default().Handler(NewRouter(s)))
	},
}

// Server answers catalogue and replay requests from charts in ChartDir.
type Server struct {
	ChartDir string
	Config   config.Config
}

type SongsResponse struct {
	Songs []string `json:"songs"`
}

type TimingResponse struct {
	TravelMs     int64 `json:"travel_ms"`
	LeadInMs     int64 `json:"lead_in_ms"`
	CompletionMs int64 `json:"completion_ms"`
}

type SongResponse struct {
	Name       string         `json:"name"`
	Instrument string         `json:"instrument"`
	Played     int            `json:"played"`
	Timing     TimingResponse `json:"timing"`
	Events     []model.Music  `json:"events"`
}

type ReplayResponse struct {
	ID     string        `json:"id"`
	Song   string        `json:"song"`
	Result replay.Result `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewRouter(s *Server) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/songs", s.HandleSongs).Methods(http.MethodGet)
	router.HandleFunc("/songs/{name}", s.HandleSong).Methods(http.MethodGet)
	router.HandleFunc("/songs/{name}/replay", s.HandleReplay).Methods(http.MethodPost)
	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, songs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, replay.ErrUnknownKey), errors.Is(err, replay.ErrUnknownAction),
		errors.Is(err, replay.ErrNegativeTime):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) load(name string) (songs.Song, []model.Music, error) {
	c, err := songs.Scan(s.ChartDir)
	if err != nil {
		return songs.Song{}, nil, err
	}
	song, err := c.Find(name)
	if err != nil {
		return songs.Song{}, nil, err
	}
	events, err := chart.ReadFile(song.Path)
	return song, events, err
}

func (s *Server) HandleSongs(w http.ResponseWriter, r *http.Request) {
	c, err := songs.Scan(s.ChartDir)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SongsResponse{Songs: c.Names()})
}

func (s *Server) HandleSong(w http.ResponseWriter, r *http.Request) {
	song, events, err := s.load(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	timing := chart.NewTiming(events, s.Config)
	var played int
	for _, m := range events {
		if m.Played {
			played++
		}
	}
	writeJSON(w, http.StatusOK, SongResponse{
		Name:       song.Name,
		Instrument: chart.PlayingInstrument(events, s.Config.DefaultInstrument),
		Played:     played,
		Timing: TimingResponse{
			TravelMs:     timing.Travel.Milliseconds(),
			LeadInMs:     timing.LeadIn.Milliseconds(),
			CompletionMs: timing.Completion.Milliseconds(),
		},
		Events: events,
	})
}

// HandleReplay plays a JSON timeline against the song and returns the result.
func (s *Server) HandleReplay(w http.ResponseWriter, r *http.Request) {
	song, events, err := s.load(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	var tl replay.Timeline
	if err := json.NewDecoder(r.Body).Decode(&tl); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid timeline: " + err.Error()})
		return
	}
	st, err := replay.Play(events, tl, s.Config, engine.Ports{})
	if err != nil {
		writeError(w, err)
		return
	}
	res := ReplayResponse{ID: uuid.New().String(), Song: song.Name, Result: replay.NewResult(st)}
	slog.Info("replayed", "id", res.ID, "song", song.Name, "score", res.Result.Score)
	writeJSON(w, http.StatusOK, res)
}
