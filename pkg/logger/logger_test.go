package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func resetLogger(t *testing.T) {
	t.Helper()
	origLog, origBuild := log, buildLogger
	t.Cleanup(func() {
		log = origLog
		buildLogger = origBuild
		once = sync.Once{}
	})
	once = sync.Once{}
}

func TestInitAndContextLogging(t *testing.T) {
	resetLogger(t)
	Init("development")
	if GetLogger() == nil {
		t.Fatal("expected logger initialized")
	}

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	Info(ctx, "info")
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, "GET", "/health", 200, 10*time.Millisecond, "127.0.0.1")
}

func TestWithContext_AddsRequestAndUserFields(t *testing.T) {
	resetLogger(t)
	core, logs := observer.New(zap.DebugLevel)
	log = zap.New(core)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	ctx = context.WithValue(ctx, UserIDKey, "user-7")
	Info(ctx, "hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-42" || fields["user_id"] != "user-7" {
		t.Fatalf("unexpected fields: %v", fields)
	}

	if WithContext(nil) != log {
		t.Fatal("expected base logger for nil context")
	}
	if WithContext(context.Background()) != log {
		t.Fatal("expected base logger without contextual fields")
	}
}

func TestInit_ProductionAndBuildFailure(t *testing.T) {
	resetLogger(t)
	Init("production")
	if GetLogger() == nil {
		t.Fatal("expected production logger initialized")
	}
	Sync()

	once = sync.Once{}
	buildLogger = func(zap.Config) (*zap.Logger, error) {
		return nil, errors.New("boom")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when logger cannot be built")
		}
	}()
	Init("production")
}
