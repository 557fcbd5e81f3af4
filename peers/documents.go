package peers

import (
	"context"
	"net/url"

	"github.com/anjiri1684/workhub/models"
)

const documentField = "files"

type DocumentClient struct {
	client *Client
}

func NewDocumentClient(c *Client) *DocumentClient { return &DocumentClient{client: c} }

func (d *DocumentClient) UploadDocuments(ctx context.Context, files []File) ([]models.Document, error) {
	var docs []models.Document
	if err := d.client.Upload(ctx, "/documents/upload", nil, withField(files), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (d *DocumentClient) UploadForConversation(ctx context.Context, conversationID string, files []File) ([]models.Document, error) {
	path := "/documents/conversations/" + url.PathEscape(conversationID) + "/upload"
	fields := map[string]string{"conversation_id": conversationID}
	var docs []models.Document
	if err := d.client.Upload(ctx, path, fields, withField(files), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func withField(files []File) []File {
	out := make([]File, len(files))
	for i, f := range files {
		if f.Field == "" {
			f.Field = documentField
		}
		out[i] = f
	}
	return out
}
