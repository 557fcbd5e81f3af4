package handlers

import (
	"mime/multipart"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/peers"
	"github.com/anjiri1684/workhub/services"
	"github.com/gofiber/fiber/v2"
)

const uploadField = "files"

// UploadHandler relays multipart uploads to the document service.
type UploadHandler struct {
	Documents     DocumentPeer
	Conversations *services.ConversationService
}

func (h *UploadHandler) UploadDocuments(c *fiber.Ctx) error {
	files, closeAll, err := formFiles(c)
	if err != nil {
		return err
	}
	defer closeAll()

	docs, err := h.Documents.UploadDocuments(c.UserContext(), files)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(docs)
}

func (h *UploadHandler) UploadConversationDocuments(c *fiber.Ctx) error {
	conv, _, err := loadMemberConversation(c, h.Conversations)
	if err != nil {
		return err
	}
	files, closeAll, err := formFiles(c)
	if err != nil {
		return err
	}
	defer closeAll()

	docs, err := h.Documents.UploadForConversation(c.UserContext(), conv.ID, files)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(docs)
}

// formFiles opens every part sent under the "files" field. The returned
// func closes them.
func formFiles(c *fiber.Ctx) ([]peers.File, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, apperrors.Validation("Multipart form with at least one file is required")
	}
	headers := form.File[uploadField]
	if len(headers) == 0 {
		return nil, nil, apperrors.Validation("At least one file is required")
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	files := make([]peers.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, apperrors.Internal("open uploaded file", err)
		}
		opened = append(opened, f)
		files = append(files, peers.File{Field: uploadField, Name: fh.Filename, Content: f})
	}
	return files, closeAll, nil
}
