package dependency

import (
	"strconv"
	"strings"

	"github.com/minio/highwayhash"
)

var key = []byte("depscan-finding-fingerprint-key!")

// Hash returns highwayhash 64 bit digest
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint returns a stable identifier of a finding built from its name, ecosystem and evidence
func (c *Classified) Fingerprint() string {
	builder := strings.Builder{}
	builder.WriteString(string(c.Ecosystem))
	builder.WriteString(":")
	builder.WriteString(c.Name)
	for _, classification := range c.Present() {
		evidence := c.Classifications[classification]
		builder.WriteString(":")
		builder.WriteString(classification.String())
		builder.WriteString("=")
		builder.WriteString(evidence.Version)
		builder.WriteString("@")
		builder.WriteString(evidence.Source)
	}
	value, err := Hash([]byte(builder.String()))
	if err != nil {
		return ""
	}
	return strconv.FormatUint(value, 16)
}
