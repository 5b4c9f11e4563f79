package render

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/notefall/engine"
	"github.com/jsphweid/notefall/model"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestEndScreen(t *testing.T) {
	s := model.Score{Score: 120, HitCount: 3, TotalCount: 4}
	assert.Equal(t, "Game Over\nScore: 120\nHits: 3/4\nAccuracy: 75.0%\n", EndScreen(s))

	s.HitCount = 4
	assert.Equal(t, "Full Clear", Title(s))
	assert.Equal(t, "Full Clear", Title(model.NewScore("piano")))
}

func TestLanes(t *testing.T) {
	var b model.Board
	n := model.NewNote(0, -10, model.Music{}, true).Click()
	b = b.WithTrack(model.Red, b.Track(model.Red).Append(n))
	b = b.WithTrack(model.Yellow, b.Track(model.Yellow).Append(model.Note{}).Append(model.Note{}))
	assert.Equal(t, "green:0 red:1* blue:0 yellow:2", Lanes(b))
}

func TestLogRendererEndScreenOnce(t *testing.T) {
	var out bytes.Buffer
	logs := &syncBuffer{}
	r := NewLogRenderer(&out, slog.New(slog.NewTextHandler(logs, nil)), time.Millisecond)

	ended := engine.State{Ended: true, Score: model.Score{HitCount: 1, TotalCount: 1, Score: 10}}
	r.Render(ended)
	r.Render(ended)
	assert.Equal(t, EndScreen(ended.Score), out.String())

	r.Render(engine.State{Retry: true})
	r.Render(ended)
	assert.Equal(t, EndScreen(ended.Score)+EndScreen(ended.Score), out.String())
}

func TestLogRendererDebouncesHUD(t *testing.T) {
	logs := &syncBuffer{}
	r := NewLogRenderer(&bytes.Buffer{}, slog.New(slog.NewTextHandler(logs, nil)), 10*time.Millisecond)

	for combo := 1; combo <= 5; combo++ {
		r.Render(engine.State{Score: model.Score{Combo: combo, Multiplier: 1}})
	}
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(logs.String()), []byte("combo=5"))
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, bytes.Count([]byte(logs.String()), []byte("msg=hud")))
}
