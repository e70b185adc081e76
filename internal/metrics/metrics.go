// Package metrics exports engine progress as prometheus counters.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Collector implements game.Observer on top of a private registry.
type Collector struct {
	Registry *prometheus.Registry

	frames          prometheus.Counter
	piecesSettled   *prometheus.CounterVec
	rowsCleared     prometheus.Counter
	clearAnimations prometheus.Counter
	movesRejected   *prometheus.CounterVec
}

// NewCollector creates a collector with all counters registered.
func NewCollector() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tetris_frames_total",
			Help: "Frames delivered by the game loop.",
		}),
		piecesSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tetris_pieces_settled_total",
			Help: "Pieces written into the board, by shape.",
		}, []string{"piece"}),
		rowsCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tetris_rows_cleared_total",
			Help: "Rows removed by line collapse.",
		}),
		clearAnimations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tetris_clear_animations_total",
			Help: "Clear animations started.",
		}),
		movesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tetris_moves_rejected_total",
			Help: "Player moves and rotations refused by collision.",
		}, []string{"kind"}),
	}

	c.Registry.MustRegister(
		c.frames,
		c.piecesSettled,
		c.rowsCleared,
		c.clearAnimations,
		c.movesRejected,
	)
	return c
}

// Frame counts one loop step.
func (c *Collector) Frame() { c.frames.Inc() }

func (c *Collector) PieceSettled(name string) { c.piecesSettled.WithLabelValues(name).Inc() }

func (c *Collector) RowsFlagged(int) { c.clearAnimations.Inc() }

func (c *Collector) RowsCleared(count int) { c.rowsCleared.Add(float64(count)) }

func (c *Collector) MoveRejected(kind string) { c.movesRejected.WithLabelValues(kind).Inc() }

// Handler returns the HTTP exposition handler for the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}

// WriteText writes every metric in the text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.Registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[METRICS] Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
