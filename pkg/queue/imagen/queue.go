// Package imagen runs a serial work queue over an image generator.
package imagen

import (
	"context"
	"errors"
	"strings"
	"time"

	"fable/pkg/images"
	"fable/pkg/utils"

	"github.com/charmbracelet/log"
)

const itemTimeout = 2 * time.Minute

type Queue struct {
	gen   images.Generator
	stop  chan struct{}
	items chan *Item
}

type Item struct {
	Prompt   string
	Response chan []byte
	Error    chan error
}

func New(gen images.Generator) *Queue {
	return &Queue{
		gen:   gen,
		items: make(chan *Item, 100),
		stop:  make(chan struct{}),
	}
}

func (q *Queue) Start() {
	go q.processLoop()
}

func (q *Queue) Stop() {
	close(q.stop)
}

func (q *Queue) Add(prompt string) (chan []byte, chan error, error) {
	respCh := make(chan []byte, 1)
	errCh := make(chan error, 1)

	select {
	case q.items <- &Item{
		Prompt:   cleanPrompt(prompt),
		Response: respCh,
		Error:    errCh,
	}:
		return respCh, errCh, nil
	default:
		return nil, nil, errors.New("queue is full")
	}
}

func (q *Queue) processLoop() {
	log.Info("image queue started")
	for {
		select {
		case <-q.stop:
			log.Info("image queue stopped")
			return
		case item := <-q.items:
			q.processItem(item)
		}
	}
}

func (q *Queue) processItem(item *Item) {
	ctx, cancel := context.WithTimeout(context.Background(), itemTimeout)
	defer cancel()

	log.Info("generating image", "prompt", utils.LimitStr(item.Prompt, 50))

	data, err := q.gen.Generate(ctx, item.Prompt)
	if err != nil {
		log.Error("image generation failed", "error", err)
		item.Error <- err
		close(item.Response)
		return
	}

	item.Response <- data
	close(item.Error)
}

// cleanPrompt removes double commas and stray spacing the prompt builder
// can leave behind.
func cleanPrompt(s string) string {
	s = strings.ReplaceAll(s, ",,", ",")
	return strings.TrimSpace(s)
}
