// Package wordlist loads phrase lists from files for import into the bank.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/taipu/internal/questions"
)

// LoadPhrases reads phrases from path. Files ending in .json hold a JSON
// array of strings; anything else is read as one phrase per line.
func LoadPhrases(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only phrase list.
			_ = cerr
		}
	}()

	var phrases []string
	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err := questions.Decode(file)
		if err != nil {
			return nil, err
		}
		for _, p := range raw {
			if p = strings.TrimSpace(p); p != "" {
				phrases = append(phrases, p)
			}
		}
	} else {
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			phrases = append(phrases, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	if len(phrases) == 0 {
		return nil, fmt.Errorf("phrase list is empty")
	}
	return phrases, nil
}
