// Package memory is an in-process pin.Pinner for tests: content-addressed
// like the real thing (the CID is a digest of the pinned bytes), with
// switches to simulate service failures.
package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
)

type object struct {
	raw  []byte
	name string
}

type Pinner struct {
	mu      sync.Mutex
	objects map[string]object

	// FailPin / FailRetrieve make the corresponding call fail.
	FailPin      bool
	FailRetrieve bool
}

func New() *Pinner {
	return &Pinner{objects: make(map[string]object)}
}

func (p *Pinner) Pin(_ context.Context, content any, name string, _ map[string]string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailPin {
		return "", errors.New("memory: pin failure injected")
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	cid := "bafk" + hex.EncodeToString(sum[:16])
	p.objects[cid] = object{raw: raw, name: name}
	return cid, nil
}

func (p *Pinner) Retrieve(_ context.Context, cid string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailRetrieve {
		return nil, errors.New("memory: retrieve failure injected")
	}
	o, ok := p.objects[cid]
	if !ok {
		return nil, errors.New("memory: unknown CID " + cid)
	}
	return o.raw, nil
}

// SetRaw overwrites (or plants) the bytes behind a CID, for corrupting
// payloads in tests.
func (p *Pinner) SetRaw(cid string, raw []byte) {
	p.mu.Lock()
	p.objects[cid] = object{raw: raw}
	p.mu.Unlock()
}

// CIDs returns every pinned CID, in no particular order.
func (p *Pinner) CIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.objects))
	for cid := range p.objects {
		out = append(out, cid)
	}
	return out
}

// Len reports the number of pinned objects.
func (p *Pinner) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.objects)
}
