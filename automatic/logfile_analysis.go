package automatic

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadLog reads every game record from a self-play log.
func ReadLog(r io.Reader) ([]GameRecord, error) {
	dec := yaml.NewDecoder(r)
	var recs []GameRecord
	for {
		var rec GameRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}

// AnalyzeLogFile summarizes a self-play log written by StartCompVComp.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	recs, err := ReadLog(file)
	if err != nil {
		return "", err
	}
	res := NewResults()
	for _, rec := range recs {
		res.Add(rec)
	}
	return res.String(), nil
}
