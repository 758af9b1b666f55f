package services

import (
	"context"

	"github.com/Lllllllleong/legalease/internal/gcp"
)

type fakeBackend struct {
	configured bool
	reply      string
	err        error
	requests   []gcp.Request
}

func (f *fakeBackend) Configured() bool { return f.configured }

func (f *fakeBackend) Generate(_ context.Context, req gcp.Request) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func (f *fakeBackend) Close() error { return nil }
