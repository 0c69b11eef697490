package aegis

import (
	"context"
	"time"
)

// Processor binds a Shield to a Codec so that encoded payloads can be
// treated without the caller handling records directly.
type Processor struct {
	shield *Shield
	codec  Codec
}

// NewProcessor returns a Processor that decodes with c and treats with s.
func NewProcessor(s *Shield, c Codec) *Processor {
	return &Processor{shield: s, codec: c}
}

// ContentType returns the content type of the underlying codec.
func (p *Processor) ContentType() string {
	return p.codec.ContentType()
}

// Shield returns the bound shield.
func (p *Processor) Shield() *Shield {
	return p.shield
}

// Protect decodes data as a record, applies HandlePII and re-encodes it.
func (p *Processor) Protect(ctx context.Context, data []byte) ([]byte, error) {
	start := time.Now()
	out, err := p.process(ctx, data, p.shield.HandlePII)
	emitProcessorComplete(ctx, false, p.codec.ContentType(), len(out), time.Since(start), err)
	return out, err
}

// Reveal decodes data as a record, applies ReverseEffects and re-encodes it.
func (p *Processor) Reveal(ctx context.Context, data []byte) ([]byte, error) {
	start := time.Now()
	out, err := p.process(ctx, data, p.shield.ReverseEffects)
	emitProcessorComplete(ctx, true, p.codec.ContentType(), len(out), time.Since(start), err)
	return out, err
}

func (p *Processor) process(ctx context.Context, data []byte, fn func(context.Context, Record) (Record, error)) ([]byte, error) {
	var record Record
	if err := p.codec.Unmarshal(data, &record); err != nil {
		return nil, newCodecError(ErrUnmarshal, err)
	}

	result, err := fn(ctx, record)
	if err != nil {
		return nil, err
	}

	out, err := p.codec.Marshal(result)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return out, nil
}
