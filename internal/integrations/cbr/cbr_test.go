package cbr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dan9191/finance-assistant/internal/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyRateResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
          <KeyRate xmlns="">
            <KR><DT>2024-10-28T00:00:00+03:00</DT><Rate>21.00</Rate></KR>
            <KR><DT>2024-10-25T00:00:00+03:00</DT><Rate>19.00</Rate></KR>
          </KeyRate>
        </diffgr:diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	logger, _ := test.NewNullLogger()
	c, err := NewClient(&config.Config{CBRURL: url, KeyRateTTL: time.Hour}, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestKeyRate(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "http://web.cbr.ru/KeyRate", r.Header.Get("SOAPAction"))
		w.Write([]byte(keyRateResponse))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	rate, err := c.KeyRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 21.0, rate)

	rate, err = c.KeyRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 21.0, rate)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call should be served from cache")
}

func TestKeyRateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"malformed xml", http.StatusOK, "<not xml"},
		{"no rates", http.StatusOK, `<root><diffgram><KeyRate></KeyRate></diffgram></root>`},
		{"bad rate", http.StatusOK, `<root><diffgram><KeyRate><KR><Rate>abc</Rate></KR></KeyRate></diffgram></root>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).KeyRate(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestBuildSOAPRequest(t *testing.T) {
	c := newTestClient(t, "http://unused")
	c.now = func() time.Time { return time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC) }

	req := c.buildSOAPRequest()
	assert.Contains(t, req, "<fromDate>2024-03-01</fromDate>")
	assert.Contains(t, req, "<ToDate>2024-03-31</ToDate>")
}
