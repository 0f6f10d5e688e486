package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	closed chan struct{}
}

func (b *fakeBackend) Health() map[string]string {
	return map[string]string{"status": "up"}
}

func (b *fakeBackend) Close() error {
	close(b.closed)
	return nil
}

func TestListenAndServeClosesBackendWhenListenFails(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	db := &fakeBackend{closed: make(chan struct{})}
	apiServer := &http.Server{Addr: taken.Addr().String(), Handler: http.NotFoundHandler()}

	errc := make(chan error, 1)
	go func() { errc <- listenAndServe(context.Background(), apiServer, db, zap.NewNop()) }()

	select {
	case err := <-errc:
		assert.Error(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("listenAndServe did not return after the listener failed")
	}

	select {
	case <-db.closed:
	default:
		t.Fatal("backend was not closed")
	}
}

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	db := &fakeBackend{closed: make(chan struct{})}
	apiServer := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- listenAndServe(ctx, apiServer, db, zap.NewNop()) }()
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("listenAndServe did not return after cancel")
	}

	select {
	case <-db.closed:
	default:
		t.Fatal("backend was not closed")
	}
}
