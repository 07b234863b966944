package processor

import (
	"bytes"
	"context"
	"os"

	"github.com/disintegration/imaging"

	"batchpix/internal/common"
	"batchpix/internal/model"
)

// convertImage decodes the entry's stored bytes, rasterizes them at the
// requested dimensions and re-encodes with the source file's codec.
// Width and height are independent: the image is stretched to fill the
// target, never letterboxed or cropped.
func (c *Converter) convertImage(ctx context.Context, entry model.Entry) (model.Artifact, error) {
	if entry.Image == nil {
		return model.Artifact{}, NewConvertError("settings", entry.Source.Name, ErrMissingSettings)
	}

	width := entry.Image.TargetWidth
	height := entry.Image.TargetHeight
	if width < 1 || height < 1 {
		return model.Artifact{}, NewConvertError("settings", entry.Source.Name, ErrInvalidDimensions)
	}

	src, err := os.Open(entry.Preview.Path())
	if err != nil {
		return model.Artifact{}, NewConvertError("open", entry.Source.Name, err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return model.Artifact{}, NewConvertError("decode", entry.Source.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return model.Artifact{}, err
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	ext := common.ExtensionOrDefault(entry.Source.Name, "png")
	format := formatFor(entry.Source.MIME, ext)

	var buf bytes.Buffer
	var opts []imaging.EncodeOption
	if format == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(c.jpegQuality))
	}
	if err := imaging.Encode(&buf, resized, format, opts...); err != nil {
		return model.Artifact{}, NewConvertError("encode", entry.Source.Name, err)
	}
	if buf.Len() == 0 {
		return model.Artifact{}, NewConvertError("encode", entry.Source.Name, ErrEmptyOutput)
	}

	return model.Artifact{
		Filename: entry.OutputName + "." + ext,
		Data:     buf.Bytes(),
	}, nil
}

// formatFor picks the output codec from the source's declared MIME type,
// falling back to the filename extension, then to PNG.
func formatFor(mime, ext string) imaging.Format {
	switch mime {
	case "image/jpeg", "image/jpg":
		return imaging.JPEG
	case "image/png":
		return imaging.PNG
	case "image/gif":
		return imaging.GIF
	case "image/bmp", "image/x-ms-bmp":
		return imaging.BMP
	case "image/tiff":
		return imaging.TIFF
	}

	if format, err := imaging.FormatFromExtension(ext); err == nil {
		return format
	}
	return imaging.PNG
}
