package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/tubeqa/internal/stage"
)

// loadModel verifies the model once per process; a failure is remembered
func (t *implWhisperCPP) loadModel(ctx context.Context) error {
	t.loadOnce.Do(func() {
		info, err := os.Stat(t.cfg.ModelPath)
		switch {
		case err != nil:
			t.loadErr = fmt.Errorf("load whisper model: %w", err)
		case info.IsDir():
			t.loadErr = fmt.Errorf("load whisper model: %s is a directory", t.cfg.ModelPath)
		default:
			t.logger.Info(ctx, "Whisper model ready: %s", t.cfg.ModelPath)
		}
	})
	return t.loadErr
}

// Transcribe runs whisper.cpp over the full audio and returns the recognized text
func (t *implWhisperCPP) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if err := t.loadModel(ctx); err != nil {
		return "", stage.Wrap(stage.Transcribe, stage.KindModel, err)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return "", stage.Wrap(stage.Transcribe, stage.KindModel, fmt.Errorf("open audio: %w", err))
	}

	audioPath = absPath(audioPath)
	dir := filepath.Dir(audioPath)

	// Whisper appends .txt to the prefix
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	txtPath := outputPrefix + ".txt"

	t.logger.Info(ctx, "Starting transcription with %d threads: %s", t.cfg.Threads, audioPath)

	// -m: Model path
	// -f: Input audio file
	// -otxt: Plain text output
	// -l: Language ("auto" lets whisper detect it)
	// -t: Number of threads
	// --output-file: Output file prefix
	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"--output-file", outputPrefix,
	}
	if t.cfg.Prompt != "" {
		args = append(args, "--prompt", t.cfg.Prompt)
	}

	if _, err := t.executor.ExecuteInDir(ctx, dir, t.cfg.BinaryPath, args...); err != nil {
		return "", stage.Wrap(stage.Transcribe, stage.KindModel, fmt.Errorf("whisper transcribe: %w", err))
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", stage.Wrap(stage.Transcribe, stage.KindModel, fmt.Errorf("read transcript: %w", err))
	}
	if err := os.Remove(txtPath); err != nil {
		t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", txtPath, err)
	}

	text := joinLines(string(data))
	if text == "" {
		return "", stage.New(stage.Transcribe, stage.KindModel, "empty transcription result")
	}
	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

// joinLines flattens whisper's per-segment lines into one paragraph
func joinLines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
