// Copyright 2025 The ambari-mcp-server Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCorrelationID_IsValid(t *testing.T) {
	id := NewCorrelationID()
	assert.True(t, id.IsValid())
	assert.Len(t, id.String(), 36)
}

func TestIsValid_RejectsGarbage(t *testing.T) {
	assert.False(t, CorrelationID("").IsValid())
	assert.False(t, CorrelationID("not-a-uuid").IsValid())
}

func TestContextRoundTrip(t *testing.T) {
	id := NewCorrelationID()
	ctx := ToContext(context.Background(), id)

	assert.Equal(t, id, FromContextOrEmpty(ctx))
	assert.Equal(t, CorrelationID(""), FromContextOrEmpty(context.Background()))
}

func TestInjectIntoRequest(t *testing.T) {
	id := NewCorrelationID()
	ctx := ToContext(context.Background(), id)

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	InjectIntoRequest(ctx, req)
	assert.Equal(t, id.String(), req.Header.Get(HeaderCorrelationID))

	// No correlation ID in context leaves the header unset.
	req2, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)
	InjectIntoRequest(context.Background(), req2)
	assert.Empty(t, req2.Header.Get(HeaderCorrelationID))
}
