package parser_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kyclens/internal/parser"
	"kyclens/internal/port"
	"kyclens/mocks"
)

func fallbackOutput(docType string) *port.RawPageResult {
	return &port.RawPageResult{
		DocType:     docType,
		Fields:      map[string]interface{}{"surname": "Sharma"},
		ExtraFields: map[string]interface{}{},
	}
}

func testInput() port.PageInput {
	return port.PageInput{ImagePNG: []byte("png bytes"), PageIndex: 0}
}

func TestFallbackParser_FirstSucceeds(t *testing.T) {
	p1 := new(mocks.MockPageParser)
	p2 := new(mocks.MockPageParser)

	input := testInput()
	p1.On("ParsePage", mock.Anything, input).Return(fallbackOutput("passport"), nil)

	fp := parser.NewFallbackParser(
		[]port.PageParser{p1, p2},
		[]string{"openai", "claude"},
	)

	result, err := fp.ParsePage(context.Background(), input)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "passport", result.DocType)
	p2.AssertNotCalled(t, "ParsePage", mock.Anything, mock.Anything)
}

func TestFallbackParser_FirstFails_SecondSucceeds(t *testing.T) {
	p1 := new(mocks.MockPageParser)
	p2 := new(mocks.MockPageParser)

	input := testInput()
	p1.On("ParsePage", mock.Anything, input).Return(nil, errors.New("generic error"))
	p2.On("ParsePage", mock.Anything, input).Return(fallbackOutput("driver_license"), nil)

	fp := parser.NewFallbackParser(
		[]port.PageParser{p1, p2},
		[]string{"openai", "claude"},
	)

	result, err := fp.ParsePage(context.Background(), input)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "driver_license", result.DocType)
}

func TestFallbackParser_FirstRateLimited_SecondSucceeds(t *testing.T) {
	p1 := new(mocks.MockPageParser)
	p2 := new(mocks.MockPageParser)

	input := testInput()
	p1.On("ParsePage", mock.Anything, input).Return(nil, parser.NewRateLimitError("openai", errors.New("429"), 60))
	p2.On("ParsePage", mock.Anything, input).Return(fallbackOutput("passport"), nil)

	fp := parser.NewFallbackParser(
		[]port.PageParser{p1, p2},
		[]string{"openai", "claude"},
	)

	result, err := fp.ParsePage(context.Background(), input)

	assert.NoError(t, err)
	require.NotNil(t, result)
}

func TestFallbackParser_AllRateLimited(t *testing.T) {
	p1 := new(mocks.MockPageParser)
	p2 := new(mocks.MockPageParser)

	input := testInput()
	p1.On("ParsePage", mock.Anything, input).Return(nil, parser.NewRateLimitError("openai", errors.New("429"), 60))
	p2.On("ParsePage", mock.Anything, input).Return(nil, parser.NewRateLimitError("claude", errors.New("429"), 30))

	fp := parser.NewFallbackParser(
		[]port.PageParser{p1, p2},
		[]string{"openai", "claude"},
	)

	result, err := fp.ParsePage(context.Background(), input)

	assert.Nil(t, result)
	assert.Error(t, err)

	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackParser_AllFail_NonRateLimit(t *testing.T) {
	p1 := new(mocks.MockPageParser)
	p2 := new(mocks.MockPageParser)

	input := testInput()
	p1.On("ParsePage", mock.Anything, input).Return(nil, errors.New("error 1"))
	p2.On("ParsePage", mock.Anything, input).Return(nil, errors.New("error 2"))

	fp := parser.NewFallbackParser(
		[]port.PageParser{p1, p2},
		[]string{"openai", "claude"},
	)

	result, err := fp.ParsePage(context.Background(), input)

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "all parsers failed")

	var rlErr *parser.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestFallbackParser_CircuitAutoCloses(t *testing.T) {
	p1 := new(mocks.MockPageParser)
	p2 := new(mocks.MockPageParser)

	input := testInput()

	p1.On("ParsePage", mock.Anything, input).Return(nil, parser.NewRateLimitError("openai", errors.New("429"), 1)).Once()
	p2.On("ParsePage", mock.Anything, input).Return(fallbackOutput("passport"), nil).Once()

	fp := parser.NewFallbackParser(
		[]port.PageParser{p1, p2},
		[]string{"openai", "claude"},
	)

	_, err := fp.ParsePage(context.Background(), input)
	assert.NoError(t, err)

	// Wait for circuit to auto-close
	time.Sleep(1100 * time.Millisecond)

	p1.On("ParsePage", mock.Anything, input).Return(fallbackOutput("passport"), nil).Once()

	result, err := fp.ParsePage(context.Background(), input)
	assert.NoError(t, err)
	require.NotNil(t, result)
	p1.AssertNumberOfCalls(t, "ParsePage", 2)
}

func TestFallbackParser_SkipsOpenCircuit(t *testing.T) {
	p1 := new(mocks.MockPageParser)
	p2 := new(mocks.MockPageParser)

	input := testInput()

	p1.On("ParsePage", mock.Anything, input).Return(nil, parser.NewRateLimitError("openai", errors.New("429"), 60)).Once()
	p2.On("ParsePage", mock.Anything, input).Return(fallbackOutput("passport"), nil)

	fp := parser.NewFallbackParser(
		[]port.PageParser{p1, p2},
		[]string{"openai", "claude"},
	)

	_, err := fp.ParsePage(context.Background(), input)
	assert.NoError(t, err)

	// Second call immediately: p1 should be skipped (circuit still open)
	_, err = fp.ParsePage(context.Background(), input)
	assert.NoError(t, err)

	p1.AssertNumberOfCalls(t, "ParsePage", 1)
}

func TestFallbackParser_SingleParser(t *testing.T) {
	p1 := new(mocks.MockPageParser)

	input := testInput()
	p1.On("ParsePage", mock.Anything, input).Return(fallbackOutput("passport"), nil)

	fp := parser.NewFallbackParser([]port.PageParser{p1}, []string{"openai"})

	result, err := fp.ParsePage(context.Background(), input)

	assert.NoError(t, err)
	require.NotNil(t, result)
}

func TestFallbackParser_ConcurrentSafety(t *testing.T) {
	p1 := new(mocks.MockPageParser)
	p2 := new(mocks.MockPageParser)

	input := testInput()
	p1.On("ParsePage", mock.Anything, input).Return(nil, parser.NewRateLimitError("openai", errors.New("429"), 5)).Maybe()
	p2.On("ParsePage", mock.Anything, input).Return(fallbackOutput("passport"), nil).Maybe()

	fp := parser.NewFallbackParser(
		[]port.PageParser{p1, p2},
		[]string{"openai", "claude"},
	)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := fp.ParsePage(context.Background(), input)
			assert.NoError(t, err)
			assert.NotNil(t, result)
		}()
	}
	wg.Wait()
}
