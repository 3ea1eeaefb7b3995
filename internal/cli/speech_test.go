package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaguanLabs/gotlas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// audioServer fakes the OpenAI speech and transcription endpoints.
func audioServer(t *testing.T, transcript string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/audio/speech":
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write([]byte("mp3-bytes"))
		case "/v1/audio/transcriptions":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"text": transcript})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	t.Setenv("GOTLAS_SPEECH_BASE_URL", srv.URL+"/v1")
	t.Setenv("GOTLAS_SPEECH_API_KEY", "test")
	return srv
}

func TestSpeakCommand(t *testing.T) {
	app, _ := newTestApp(t)
	audioServer(t, "")

	path := filepath.Join(t.TempDir(), "hola.mp3")
	_, errOut, err := execute(t, app, "speak", "-o", path, "Hola Mundo")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))
	assert.Contains(t, errOut, "Wrote 9 bytes")
}

func TestSpeakCommand_Stdout(t *testing.T) {
	app, _ := newTestApp(t)
	audioServer(t, "")

	out, _, err := execute(t, app, "speak", "Hola")
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", out)
}

func TestTranscribeCommand(t *testing.T) {
	app, _ := newTestApp(t)
	audioServer(t, "Bonjour tout le monde")

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0600))

	out, errOut, err := execute(t, app, "transcribe", "--from", "auto", path)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour tout le monde\n", out)
	assert.Contains(t, errOut, "Detected language: French (fr)")

	out, errOut, err = execute(t, app, "transcribe", "--from", "fr", path)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour tout le monde\n", out)
	assert.NotContains(t, errOut, "Detected language")
}

func TestTranscribeCommand_NoSpeech(t *testing.T) {
	app, _ := newTestApp(t)
	audioServer(t, "")

	path := filepath.Join(t.TempDir(), "silence.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0600))

	_, _, err := execute(t, app, "transcribe", path)
	assert.Equal(t, gotlas.MsgSpeechNoSpeech, gotlas.UserMessage(err, ""))

	_, _, err = execute(t, app, "transcribe", filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}
