package handler

import (
	stderrors "errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/classic-cipher-go/internal/cipher"
	"github.com/classic-cipher-go/internal/errors"
	"github.com/classic-cipher-go/internal/pipeline"
	"github.com/classic-cipher-go/internal/textutil"
	"github.com/classic-cipher-go/internal/trace"
)

// TransformRequest carries one encrypt/decrypt request. Either a cipher
// kind and key are given inline, or a stored profile is named; inline
// fields win when both are present.
type TransformRequest struct {
	Cipher    string `json:"cipher"`
	Profile   string `json:"profile"`
	Key       string `json:"key"`
	Mode      string `json:"mode"`
	Text      string `json:"text"`
	Workers   int    `json:"workers"`
	Normalize bool   `json:"normalize"`
}

// Transform applies the requested cipher to the request text across the
// worker pipeline. The response carries the whole transformed text or an
// error; partial output is never emitted.
func (h *APIHandler) Transform(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, errors.NewBadRequestWithCause("Invalid request body", err))
		return
	}

	if req.Profile != "" && req.Cipher == "" {
		profile, ok := h.profiles.Get(req.Profile)
		if !ok {
			RespondError(c, errors.NewNotFound("Profile not found: "+req.Profile))
			return
		}
		if !profile.Enable {
			RespondError(c, errors.NewForbidden("Profile is disabled: "+req.Profile))
			return
		}
		req.Cipher = profile.Cipher
		req.Key = profile.Key
		if req.Workers == 0 {
			req.Workers = profile.Workers
		}
	}

	mode, err := cipher.ParseMode(req.Mode)
	if err != nil {
		RespondError(c, errors.NewBadRequestWithCause("Invalid mode", err))
		return
	}

	ciph, err := cipher.New(cipher.Kind(req.Cipher), req.Key)
	if err != nil {
		var invalidKey *cipher.InvalidKeyError
		if stderrors.As(err, &invalidKey) {
			RespondError(c, errors.NewInvalidKey(invalidKey.Error()))
			return
		}
		RespondError(c, errors.NewBadRequestWithCause("Cannot construct cipher", err))
		return
	}

	workers := req.Workers
	if workers == 0 {
		workers = h.cfg.Transform.Workers
	}
	if workers == 0 {
		workers = pipeline.DefaultWorkers
	}
	p, err := pipeline.New(workers)
	if err != nil {
		RespondError(c, errors.NewBadRequestWithCause("Invalid worker count", err))
		return
	}

	text := req.Text
	if req.Normalize {
		text = textutil.Normalize(text)
	}

	ctx := trace.WithOpTag(c.Request.Context(), "transform:"+req.Cipher)
	start := time.Now()
	output := p.Transform(ciph, mode, text)

	log.Debug().
		Str("request_id", trace.GetRequestID(ctx)).
		Str("op", trace.GetOpTag(ctx)).
		Str("mode", mode.String()).
		Int("workers", p.Workers()).
		Int("input_len", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Transform complete")

	RespondSuccess(c, gin.H{
		"cipher":  req.Cipher,
		"mode":    mode.String(),
		"workers": p.Workers(),
		"output":  output,
	})
}
