package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// maxEvidenceSize 证据附件大小上限
const maxEvidenceSize = 20 << 20

// EvidenceHandler 证据附件处理器
type EvidenceHandler struct {
	svc *service.EvidenceService
}

func NewEvidenceHandler(svc *service.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{svc: svc}
}

// UploadEvidence 上传证据附件，返回可回填到评估的对象路径
// POST /api/v1/evidence (multipart form, field "file")
func (h *EvidenceHandler) UploadEvidence(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required: "+err.Error())
		return
	}
	if fileHeader.Size > maxEvidenceSize {
		BadRequest(c, "file exceeds the 20MB limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "open upload: "+err.Error())
		return
	}
	defer f.Close()

	url, err := h.svc.Upload(c.Request.Context(), f, fileHeader.Filename,
		fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		InternalError(c, "upload failed: "+err.Error())
		return
	}

	Created(c, gin.H{"url": url})
}
