// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id := GenerateCorrelationID()
	if len(id) != 8 {
		t.Errorf("expected 8-character correlation ID, got %d characters: %s", len(id), id)
	}

	other := GenerateCorrelationID()
	if id == other {
		t.Error("expected unique correlation IDs")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("expected empty request ID from bare context, got %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("expected 'req-123', got %q", got)
	}
}

func TestCorrelationIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := ContextWithCorrelationID(context.Background(), "abc12345")
	if got := CorrelationIDFromContext(ctx); got != "abc12345" {
		t.Errorf("expected 'abc12345', got %q", got)
	}

	ctx = ContextWithNewCorrelationID(context.Background())
	if got := CorrelationIDFromContext(ctx); got == "" {
		t.Error("expected generated correlation ID")
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithCorrelationID(ctx, "corr-7")

	Ctx(ctx).Info().Msg("with context")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-42"`) {
		t.Errorf("expected request_id field, got: %s", output)
	}
	if !strings.Contains(output, `"correlation_id":"corr-7"`) {
		t.Errorf("expected correlation_id field, got: %s", output)
	}
}

func TestCtx_EmptyContext(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	Ctx(context.Background()).Info().Msg("no ids")

	output := buf.String()
	if strings.Contains(output, "request_id") {
		t.Errorf("expected no request_id field for bare context, got: %s", output)
	}
	if !strings.Contains(output, "no ids") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestCtxWith(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	ctx := ContextWithRequestID(context.Background(), "req-9")
	logger := CtxWith(ctx).Str("user_id", "u1").Logger()
	logger.Info().Msg("user action")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-9"`) {
		t.Errorf("expected request_id field, got: %s", output)
	}
	if !strings.Contains(output, `"user_id":"u1"`) {
		t.Errorf("expected user_id field, got: %s", output)
	}
}
