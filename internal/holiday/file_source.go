package holiday

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/username/chofshli/pkg/dateutil"
	"go.uber.org/zap"
)

// FileSource implements Source using a local text file
type FileSource struct {
	filePath string
	logger   *zap.Logger
	data     map[int][]Observance // key: Gregorian year
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int][]Observance),
	}
}

// Load loads observances from file
func (fs *FileSource) Load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	if err := fs.read(file); err != nil {
		return err
	}

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("years", len(fs.data)))

	return nil
}

// read parses lines of the form
//
//	YYYY-MM-DD kinds Name [| Local name]
//
// Example: 2025-04-13 yomtov Pesach I | פסח א׳
func (fs *FileSource) read(r io.Reader) error {
	data := make(map[int][]Observance)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			fs.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		date, err := time.Parse(dateutil.KeyLayout, parts[0])
		if err != nil {
			fs.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
			continue
		}

		kinds, err := parseKinds(parts[1])
		if err != nil {
			fs.logger.Warn("Failed to parse kinds", zap.String("kinds", parts[1]), zap.Error(err))
			continue
		}

		name, localName, _ := strings.Cut(strings.Join(parts[2:], " "), "|")
		ob := Observance{
			Date:      dateutil.StartOfDay(date),
			Name:      strings.TrimSpace(name),
			LocalName: strings.TrimSpace(localName),
			Kinds:     kinds,
		}
		data[date.Year()] = append(data[date.Year()], ob)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fs.data = data
	return nil
}

// Observances returns the observances of a year found in the file
func (fs *FileSource) Observances(ctx context.Context, year int) ([]Observance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	observances, ok := fs.data[year]
	if !ok {
		return nil, fmt.Errorf("year not found in holiday file: %d", year)
	}

	out := make([]Observance, len(observances))
	copy(out, observances)
	return out, nil
}

func parseKinds(s string) (Kinds, error) {
	var kinds Kinds
	for _, part := range strings.Split(s, ",") {
		kind, ok := ParseKind(part)
		if !ok {
			return 0, fmt.Errorf("unknown kind %q", part)
		}
		kinds |= Kinds(kind)
	}
	return kinds, nil
}
