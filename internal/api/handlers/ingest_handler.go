package handlers

import (
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/callsight/internal/stages"
	"github.com/yoockh/callsight/internal/utils"
)

const maxUploadBytes = 50 << 20

type IngestHandler struct {
	svc stages.IngestService
}

func NewIngestHandler(svc stages.IngestService) *IngestHandler {
	return &IngestHandler{svc: svc}
}

// Upload accepts a multipart body with exactly one part named "audio" and
// one named "metadata". The transport may deliver the whole body
// base64-encoded, signaled by Content-Transfer-Encoding.
func (h *IngestHandler) Upload(c *gin.Context) {
	const op = "IngestHandler.Upload"

	mediaType, params, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "expected a multipart body", err))
		return
	}
	boundary := params["boundary"]
	if boundary == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "multipart boundary is missing", nil))
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read request body", err))
		return
	}
	if strings.EqualFold(c.GetHeader("Content-Transfer-Encoding"), "base64") {
		decoded, err := base64.StdEncoding.DecodeString(string(body))
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "body is not valid base64", err))
			return
		}
		body = decoded
	}

	audio, metadata, err := readParts(strings.NewReader(string(body)), boundary)
	if err != nil {
		writeError(c, err)
		return
	}

	row, err := h.svc.Ingest(c.Request.Context(), audio, metadata)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interaction_id": row.InteractionID,
		"status":         row.Status,
	})
}

// readParts locates the audio and metadata parts by their
// content-disposition names. Both must be present.
func readParts(r io.Reader, boundary string) (audio, metadata []byte, err error) {
	const op = "IngestHandler.Upload"

	mr := multipart.NewReader(r, boundary)
	for {
		part, perr := mr.NextPart()
		if perr == io.EOF {
			break
		}
		if perr != nil {
			return nil, nil, utils.E(utils.CodeInvalidArgument, op, "malformed multipart body", perr)
		}

		data, rerr := io.ReadAll(part)
		if rerr != nil {
			return nil, nil, utils.E(utils.CodeInvalidArgument, op, "failed to read multipart part", rerr)
		}

		switch part.FormName() {
		case "audio":
			audio = data
		case "metadata":
			metadata = data
		}
	}

	if len(audio) == 0 || len(metadata) == 0 {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "missing audio file or metadata", nil)
	}
	return audio, metadata, nil
}
