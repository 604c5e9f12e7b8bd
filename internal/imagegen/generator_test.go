package imagegen_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinaywadhwa9/anjuli/internal/backoff"
	"github.com/vinaywadhwa9/anjuli/internal/imagegen"
	"github.com/vinaywadhwa9/anjuli/internal/ratelimit"
)

// fakeClient replays a scripted sequence of responses and errors, one per
// call, repeating the last entry once the script runs out.
type fakeClient struct {
	script []call
	calls  int
}

type call struct {
	resp *imagegen.Response
	err  error
}

func (f *fakeClient) GenerateContent(ctx context.Context, model, prompt string) (*imagegen.Response, error) {
	i := f.calls
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	f.calls++
	c := f.script[i]
	return c.resp, c.err
}

// pngBytes encodes a tiny solid-color PNG for use as fake inline data.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageResponse(data []byte) *imagegen.Response {
	return &imagegen.Response{Parts: []imagegen.Part{
		{Text: "Here is your illustration."},
		{InlineData: &imagegen.InlineData{Data: data, MIMEType: "image/png"}},
	}}
}

// newGenerator builds a Generator with delays short enough for tests.
func newGenerator(client imagegen.Client) *imagegen.Generator {
	policy := backoff.New(time.Millisecond, 4*time.Millisecond)
	policy.Rand = rand.New(rand.NewSource(1))
	return imagegen.NewGenerator(client, imagegen.Settings{
		Model:      "test-model",
		MaxRetries: 5,
		BaseDelay:  time.Millisecond,
		Backoff:    policy,
	})
}

func TestGenerateReturnsNormalizedImage(t *testing.T) {
	src := pngBytes(t)
	client := &fakeClient{script: []call{{resp: imageResponse(src)}}}

	data, err := newGenerator(client).Generate(context.Background(), "a banyan tree")
	require.NoError(t, err)
	require.NotNil(t, data)

	// Output must be a decodable PNG stream.
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, 1, client.calls)
}

func TestGenerateNoImagePartsYieldsNoResult(t *testing.T) {
	client := &fakeClient{script: []call{
		{resp: &imagegen.Response{Parts: []imagegen.Part{{Text: "only text"}}}},
	}}

	data, err := newGenerator(client).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, 1, client.calls, "no-image responses are not retried")
}

func TestGenerateEmptyResponseYieldsNoResult(t *testing.T) {
	client := &fakeClient{script: []call{{resp: &imagegen.Response{}}}}

	data, err := newGenerator(client).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestGenerateRetriesRateLimitUpToMaxRetries(t *testing.T) {
	client := &fakeClient{script: []call{
		{err: errors.New("googleapi: Error 429: Too Many Requests")},
	}}

	data, err := newGenerator(client).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, 5, client.calls, "one call per attempt up to MaxRetries")
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	client := &fakeClient{script: []call{
		{err: errors.New("503 Service Unavailable")},
		{err: errors.New("internal server error")},
		{resp: imageResponse(pngBytes(t))},
	}}

	data, err := newGenerator(client).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Equal(t, 3, client.calls)
}

func TestGenerateRecoversAfterRateLimit(t *testing.T) {
	client := &fakeClient{script: []call{
		{err: &ratelimit.HTTPError{Code: 429, Err: errors.New("slow down")}},
		{resp: imageResponse(pngBytes(t))},
	}}

	data, err := newGenerator(client).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Equal(t, 2, client.calls)
}

func TestGenerateDoesNotRetryOtherErrors(t *testing.T) {
	client := &fakeClient{script: []call{
		{err: errors.New("invalid argument: unsupported prompt")},
	}}

	data, err := newGenerator(client).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, 1, client.calls, "non-retryable errors consume no retry attempts")
}

func TestGenerateSkipsUndecodableImagePart(t *testing.T) {
	good := pngBytes(t)
	client := &fakeClient{script: []call{
		{resp: &imagegen.Response{Parts: []imagegen.Part{
			{InlineData: &imagegen.InlineData{Data: []byte("not an image"), MIMEType: "image/png"}},
			{InlineData: &imagegen.InlineData{Data: good, MIMEType: "image/png"}},
		}}},
	}}

	data, err := newGenerator(client).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.NotNil(t, data, "falls through to the next decodable part")
}

func TestGenerateReturnsContextError(t *testing.T) {
	client := &fakeClient{script: []call{
		{err: errors.New("rate limit exceeded")},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGenerator(client).Generate(ctx, "p")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGeneratorAppliesDefaults(t *testing.T) {
	client := &fakeClient{script: []call{{resp: &imagegen.Response{}}}}

	// Must not panic on nil backoff and zero settings.
	gen := imagegen.NewGenerator(client, imagegen.Settings{BaseDelay: time.Millisecond})
	data, err := gen.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Nil(t, data)
}

// ---------------------------------------------------------------------------
// Smoke test
// ---------------------------------------------------------------------------

func TestSmokeTestWritesImage(t *testing.T) {
	client := &fakeClient{script: []call{{resp: imageResponse(pngBytes(t))}}}
	out := filepath.Join(t.TempDir(), "test_image.png")

	err := imagegen.SmokeTest(context.Background(), newGenerator(client), out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	_, _, err = image.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestSmokeTestFailsWithoutImage(t *testing.T) {
	client := &fakeClient{script: []call{
		{resp: &imagegen.Response{Parts: []imagegen.Part{{Text: "no image"}}}},
	}}
	out := filepath.Join(t.TempDir(), "test_image.png")

	err := imagegen.SmokeTest(context.Background(), newGenerator(client), out)
	require.Error(t, err)
	assert.NoFileExists(t, out)
}
