/*
DESCRIPTION
  h263dump is a small CLI that decodes an H.263 (or Sorenson Spark)
  elementary stream and writes every decoded picture out as an image
  file, following the pattern of this repository's other single-purpose
  cmd/ tools such as cmd/looper.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// h263dump reads an H.263 elementary stream from a file or stdin, decodes
// pictures with codec/h263/h263dec, runs the deblocking filter and
// YUV->RGBA conversion, and writes out frames as PNG or BMP images - the
// "display pipeline" the core decoder keeps external, realised here as the
// thinnest possible consumer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/image/bmp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/h263/codec/h263/deblock"
	"github.com/ausocean/h263/codec/h263/h263dec"
	"github.com/ausocean/h263/codec/h263/yuv"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration, matching cmd/rv's rolling-file setup.
const (
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	var (
		inPath   = flag.String("in", "-", "input H.263 stream path, or - for stdin")
		outDir   = flag.String("out", ".", "directory to write decoded frames into")
		prefix   = flag.String("prefix", "frame", "output file name prefix")
		format   = flag.String("format", "png", "output image format: png or bmp")
		sorenson = flag.Bool("sorenson", false, "decode as a Sorenson Spark bitstream")
		logPath  = flag.String("log", "h263dump.log", "rolling log file path")
		showVer  = flag.Bool("version", false, "show version")
	)
	flag.Parse()

	if *showVer {
		fmt.Println(version)
		return
	}

	fileLog := &lumberjack.Logger{
		Filename:   *logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	defer fileLog.Close()

	zapLog := newFileLogger(fileLog)
	defer zapLog.Sync()

	if err := run(*inPath, *outDir, *prefix, *format, *sorenson, zapLog); err != nil {
		zapLog.Errorw("h263dump failed", "error", err)
		fmt.Fprintln(os.Stderr, "h263dump:", err)
		os.Exit(1)
	}
}

// newFileLogger builds a zap.SugaredLogger writing JSON lines to w, the
// same lumberjack-backed rolling file rv's logger writes to, rather than
// stdout.
func newFileLogger(w io.Writer) *zap.SugaredLogger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(w), zap.InfoLevel)
	return zap.New(core).Sugar()
}

func run(inPath, outDir, prefix, format string, sorenson bool, log *zap.SugaredLogger) error {
	src, err := openInput(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var opts h263dec.DecoderOption
	if sorenson {
		opts |= h263dec.SorensonSparkBitstream
	}

	dec := h263dec.NewDecoder(src, h263dec.WithLogger(log), h263dec.WithDecoderOptions(opts))

	frameIndex := 0
	for {
		pic, err := dec.DecodeNextPicture()
		if err != nil {
			if h263dec.IsEOFError(err) {
				break
			}
			return fmt.Errorf("decoding picture %d: %w", frameIndex, err)
		}

		img := renderPicture(pic)

		name := filepath.Join(outDir, fmt.Sprintf("%s_%04d.%s", prefix, frameIndex, format))
		if err := writeImage(name, img, format); err != nil {
			return fmt.Errorf("writing frame %d: %w", frameIndex, err)
		}
		log.Infow("wrote frame", "index", frameIndex, "path", name)
		frameIndex++
	}

	log.Infow("decode complete", "frames", frameIndex)
	return nil
}

// renderPicture applies the deblocking filter (when the picture's header
// requests it) and converts the result to an image.Image via BT.601
// nearest-chroma YUV->RGBA conversion.
func renderPicture(pic *h263dec.DecodedPicture) image.Image {
	frame := pic.Frame

	if pic.Header.Options&h263dec.DeblockingFilter != 0 {
		strength := deblock.QuantToStrength[clampQuant(pic.Header.Quantizer)]
		frame.Luma = deblock.Deblock(frame.Luma, frame.LumaSamplesPerRow(), strength)
		frame.ChromaB = deblock.Deblock(frame.ChromaB, frame.ChromaSamplesPerRow(), strength)
		frame.ChromaR = deblock.Deblock(frame.ChromaR, frame.ChromaSamplesPerRow(), strength)
	}

	return yuv.ConvertImage(frame.Luma, frame.ChromaB, frame.ChromaR, frame.LumaSamplesPerRow(), frame.ChromaSamplesPerRow())
}

// clampQuant keeps a quantizer within QuantToStrength's valid index range;
// QUANT is normatively in [1,31], but a defensive clamp costs nothing here
// at the CLI boundary.
func clampQuant(q uint8) uint8 {
	switch {
	case q < 1:
		return 1
	case q > 31:
		return 31
	default:
		return q
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func writeImage(path string, img image.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "bmp":
		return bmp.Encode(f, img)
	default:
		return png.Encode(f, img)
	}
}
