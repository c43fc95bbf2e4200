package config

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"strings"
)

// KafkaProperties holds the server.properties kafka will boot with.
// It is loaded from a pristine template, mutated in memory, and dumped
// to the settings file the kafka binary consumes. Template line order
// and comments survive the round trip so operator diffs stay readable.
type KafkaProperties struct {
	settingsFile string
	lines        []*propLine
	index        map[string]*propLine
}

type propLine struct {
	raw   string // verbatim comment/blank line, "" for key lines
	key   string
	value string
	dead  bool
}

func NewKafkaProperties(templateFile, settingsFile string) (*KafkaProperties, error) {
	data, err := ioutil.ReadFile(templateFile)
	if err != nil {
		return nil, err
	}

	this := &KafkaProperties{
		settingsFile: settingsFile,
		index:        make(map[string]*propLine),
	}
	raws := strings.Split(string(data), "\n")
	if n := len(raws); n > 0 && raws[n-1] == "" {
		raws = raws[:n-1] // file's trailing newline, not an empty line
	}
	for _, raw := range raws {
		trimmed := strings.TrimSpace(raw)
		eq := strings.IndexByte(trimmed, '=')
		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!' || eq < 1 {
			this.lines = append(this.lines, &propLine{raw: raw})
			continue
		}

		line := &propLine{
			key:   strings.TrimSpace(trimmed[:eq]),
			value: strings.TrimSpace(trimmed[eq+1:]),
		}
		this.lines = append(this.lines, line)
		this.index[line.key] = line
	}
	return this, nil
}

func (this *KafkaProperties) SettingsFile() string {
	return this.settingsFile
}

// GetProperty returns "" for keys that are absent or deleted.
func (this *KafkaProperties) GetProperty(key string) string {
	if line, present := this.index[key]; present && !line.dead {
		return line.value
	}
	return ""
}

func (this *KafkaProperties) SetProperty(key, value string) {
	if line, present := this.index[key]; present {
		line.value = value
		line.dead = false
		return
	}

	line := &propLine{key: key, value: value}
	this.lines = append(this.lines, line)
	this.index[key] = line
}

func (this *KafkaProperties) DeleteProperty(key string) {
	if line, present := this.index[key]; present {
		line.dead = true
	}
}

// Dump persists the current properties to the settings file.
func (this *KafkaProperties) Dump() error {
	var buf bytes.Buffer
	for _, line := range this.lines {
		if line.dead {
			continue
		}
		if line.key == "" {
			buf.WriteString(line.raw)
			buf.WriteByte('\n')
			continue
		}

		fmt.Fprintf(&buf, "%s=%s\n", line.key, line.value)
	}

	return ioutil.WriteFile(this.settingsFile, buf.Bytes(), 0644)
}
