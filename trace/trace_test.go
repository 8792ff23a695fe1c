// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTracerDropsSpans(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{ServiceName: "curvevm"})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "Processor.Execute")
	require.False(span.IsRecording())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracerSamples(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:     true,
		SampleRate:  1,
		ServiceName: "curvevm",
	})
	require.NoError(err)

	_, span := tracer.Start(context.Background(), "Processor.Execute")
	require.True(span.IsRecording())
	span.SetAttributes(Action(1))
	span.End()
	require.NoError(tracer.Close())
}

func TestInvalidSampleRate(t *testing.T) {
	_, err := New(&Config{Enabled: true, SampleRate: 1.5})
	require.ErrorIs(t, err, ErrInvalidSampleRate)
}
