// Package tables loads the static chart-constant, song-info, and
// nickname-alias reference data the scoring engine and song resolver
// need, from files embedded at build time.
package tables

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/pannpers/go-logging/logging"
	"gopkg.in/yaml.v3"
)

//go:embed data/songs.csv data/difficulty.csv data/nicknames.yaml data/predictions.csv
var dataFS embed.FS

// StaticTables holds the chart constants, song metadata, and nickname
// aliases loaded once at startup.
type StaticTables struct {
	songs       map[string]*entity.SongInfo
	constants   map[entity.ChartKey]float64
	predicted   map[entity.ChartKey]float64
	nicknames   map[string][]string
	nicknameIdx map[string][]string // lowercased nickname -> song IDs that claim it
}

// Load reads the embedded reference data files and builds the in-memory
// lookup tables. A missing or malformed predictions file is tolerated
// (logged, treated as empty) since predicted constants are supplementary;
// every other file is required.
func Load(ctx context.Context, logger *logging.Logger) (*StaticTables, error) {
	songs, err := loadSongs()
	if err != nil {
		return nil, fmt.Errorf("failed to load song info: %w", err)
	}

	constants, err := loadDifficulty()
	if err != nil {
		return nil, fmt.Errorf("failed to load chart difficulty: %w", err)
	}

	nicknames, err := loadNicknames()
	if err != nil {
		return nil, fmt.Errorf("failed to load song nicknames: %w", err)
	}

	predicted, err := loadPredictions()
	if err != nil {
		logger.Warn(ctx, "failed to load predicted constants, continuing without them")
		predicted = map[entity.ChartKey]float64{}
	}

	logger.Info(ctx, "loaded static chart tables")

	nicknameIdx := map[string][]string{}
	for songID, aliases := range nicknames {
		for _, alias := range aliases {
			key := strings.ToLower(alias)
			nicknameIdx[key] = append(nicknameIdx[key], songID)
		}
	}

	return &StaticTables{
		songs:       songs,
		constants:   constants,
		predicted:   predicted,
		nicknames:   nicknames,
		nicknameIdx: nicknameIdx,
	}, nil
}

func loadSongs() (map[string]*entity.SongInfo, error) {
	f, err := dataFS.Open("data/songs.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	cols := columnIndex(header)

	songs := make(map[string]*entity.SongInfo)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id := record[cols["id"]]
		songs[id] = &entity.SongInfo{
			SongID:   id,
			Title:    record[cols["title"]],
			Composer: record[cols["composer"]],
		}
	}

	return songs, nil
}

func loadDifficulty() (map[entity.ChartKey]float64, error) {
	f, err := dataFS.Open("data/difficulty.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	cols := columnIndex(header)

	difficultyCols := map[string]entity.Difficulty{
		"ez": entity.DifficultyEZ,
		"hd": entity.DifficultyHD,
		"in": entity.DifficultyIN,
		"at": entity.DifficultyAT,
	}

	constants := make(map[entity.ChartKey]float64)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id := record[cols["id"]]
		for colName, difficulty := range difficultyCols {
			idx, ok := cols[colName]
			if !ok {
				continue
			}
			raw := strings.TrimSpace(record[idx])
			if raw == "" {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid constant %q for %s/%s: %w", raw, id, colName, err)
			}
			constants[entity.ChartKey{SongID: id, Difficulty: difficulty}] = value
		}
	}

	return constants, nil
}

func loadNicknames() (map[string][]string, error) {
	content, err := dataFS.ReadFile("data/nicknames.yaml")
	if err != nil {
		return nil, err
	}

	nicknames := map[string][]string{}
	if err := yaml.Unmarshal(content, &nicknames); err != nil {
		return nil, fmt.Errorf("failed to parse nicknames.yaml: %w", err)
	}

	return nicknames, nil
}

func loadPredictions() (map[entity.ChartKey]float64, error) {
	f, err := dataFS.Open("data/predictions.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return map[entity.ChartKey]float64{}, nil
		}
		return nil, err
	}
	cols := columnIndex(header)

	difficultyCols := map[string]entity.Difficulty{
		"ez":  entity.DifficultyEZ,
		"hd":  entity.DifficultyHD,
		"inl": entity.DifficultyIN,
		"at":  entity.DifficultyAT,
	}

	predicted := make(map[entity.ChartKey]float64)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id := record[cols["song_id"]]
		for colName, difficulty := range difficultyCols {
			idx, ok := cols[colName]
			if !ok {
				continue
			}
			raw := strings.TrimSpace(record[idx])
			if raw == "" {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			predicted[entity.ChartKey{SongID: id, Difficulty: difficulty}] = value
		}
	}

	return predicted, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}
