package workflow

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/regpulse/regpulse/internal/documents"
	"github.com/regpulse/regpulse/internal/extraction"
	"github.com/regpulse/regpulse/internal/scoring"
)

// InitNode returns a state node that loads the document row, downloads the
// raw bytes from blob storage, and extracts the document text into the
// scoring input stored in the workflow state bag.
func InitNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		documentID, err := extractDocumentID(s)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		doc, data, err := downloadDocument(ctx, rt, documentID)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		text, err := extraction.Extract(data, doc.Filename, doc.ContentType)
		if err != nil {
			return s, fmt.Errorf("init: %w: %w", ErrExtractFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "init node complete",
			"document_id", documentID,
			"filename", doc.Filename,
			"text_length", len(text),
		)

		s = s.Set(KeyInput, scoring.Input{Title: doc.Filename, Text: text})
		s = s.Set(KeyFilename, doc.Filename)

		return s, nil
	})
}

func downloadDocument(
	ctx context.Context,
	rt *Runtime,
	documentID uuid.UUID,
) (*documents.Document, []byte, error) {
	doc, err := rt.Documents.Find(ctx, documentID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
	}

	blob, err := rt.Storage.Download(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: download blob: %w", ErrExtractFailed, err)
	}
	defer blob.Body.Close()

	data, err := io.ReadAll(blob.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read blob: %w", ErrExtractFailed, err)
	}

	return doc, data, nil
}

func extractDocumentID(s state.State) (uuid.UUID, error) {
	val, ok := s.Get(KeyDocumentID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s in state", ErrDocumentNotFound, KeyDocumentID)
	}

	documentID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is not uuid.UUID", ErrDocumentNotFound, KeyDocumentID)
	}

	return documentID, nil
}
