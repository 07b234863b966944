package processor

import (
	"bytes"
	"context"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"batchpix/internal/model"
)

// convertDocument reparses and reserializes the stored PDF. Object and
// xref streams are disabled: a plain serialization costs size but keeps
// the output readable by the widest range of viewers.
func (c *Converter) convertDocument(ctx context.Context, entry model.Entry) (model.Artifact, error) {
	data, err := os.ReadFile(entry.Preview.Path())
	if err != nil {
		return model.Artifact{}, NewConvertError("open", entry.Source.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return model.Artifact{}, err
	}

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &buf, conf); err != nil {
		return model.Artifact{}, NewConvertError("reserialize", entry.Source.Name, err)
	}
	if buf.Len() == 0 {
		return model.Artifact{}, NewConvertError("reserialize", entry.Source.Name, ErrEmptyOutput)
	}

	return model.Artifact{
		Filename: entry.OutputName + ".pdf",
		Data:     buf.Bytes(),
	}, nil
}
