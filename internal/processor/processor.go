package processor

import (
	"context"
	"fmt"
	"log/slog"

	"batchpix/internal/common"
	"batchpix/internal/model"
)

// Converter turns one tracked entry into one output artifact.
type Converter struct {
	logger      *slog.Logger
	jpegQuality int
}

// New creates a converter. jpegQuality applies to JPEG re-encodes only;
// values outside 1..100 fall back to the default.
func New(logger *slog.Logger, jpegQuality int) *Converter {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = common.DefaultJPEGQuality
	}
	return &Converter{
		logger:      logger,
		jpegQuality: jpegQuality,
	}
}

// Process converts the entry according to its kind. The entry is a
// settings-captured snapshot; later edits in the store cannot affect an
// issued conversion.
func (c *Converter) Process(ctx context.Context, entry model.Entry) (model.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return model.Artifact{}, err
	}

	var artifact model.Artifact
	var err error
	switch entry.Kind {
	case model.KindImage:
		artifact, err = c.convertImage(ctx, entry)
	case model.KindDocument:
		artifact, err = c.convertDocument(ctx, entry)
	default:
		err = NewConvertError("dispatch", entry.Source.Name,
			fmt.Errorf("unknown entry kind %d", entry.Kind))
	}

	if err != nil {
		c.logger.Error("conversion failed", "file", entry.Source.Name, "error", err)
		return model.Artifact{}, err
	}

	return artifact, nil
}
