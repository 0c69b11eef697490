package aegis

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for shield events.
var (
	SignalShieldCreated   = capitan.NewSignal("aegis.shield.created", "Shield instantiated")
	SignalHandleStart     = capitan.NewSignal("aegis.handle.start", "HandlePII beginning")
	SignalHandleComplete  = capitan.NewSignal("aegis.handle.complete", "HandlePII finished")
	SignalReverseStart    = capitan.NewSignal("aegis.reverse.start", "ReverseEffects beginning")
	SignalReverseComplete = capitan.NewSignal("aegis.reverse.complete", "ReverseEffects finished")
	SignalProtectComplete = capitan.NewSignal("aegis.protect.complete", "Processor protect finished")
	SignalRevealComplete  = capitan.NewSignal("aegis.reveal.complete", "Processor reveal finished")
)

// Keys for typed event data.
var (
	KeyFieldCount     = capitan.NewIntKey("field_count")
	KeyPatternCount   = capitan.NewIntKey("pattern_count")
	KeyEncryption     = capitan.NewStringKey("encryption")
	KeyContentType    = capitan.NewStringKey("content_type")
	KeyPayloadSize    = capitan.NewIntKey("size")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
	KeyPathCount      = capitan.NewIntKey("path_count")
	KeyRedactedCount  = capitan.NewIntKey("redacted_count")
	KeyMaskedCount    = capitan.NewIntKey("masked_count")
	KeyEncryptedCount = capitan.NewIntKey("encrypted_count")
	KeyDecryptedCount = capitan.NewIntKey("decrypted_count")
	KeyHashedCount    = capitan.NewIntKey("hashed_count")
	KeyHeuristicCount = capitan.NewIntKey("heuristic_count")
)

// emitShieldCreated emits an event when a shield is constructed.
func emitShieldCreated(ctx context.Context, fields, patterns int, encryption bool) {
	mode := "disabled"
	if encryption {
		mode = "enabled"
	}
	capitan.Emit(ctx, SignalShieldCreated,
		KeyFieldCount.Field(fields),
		KeyPatternCount.Field(patterns),
		KeyEncryption.Field(mode),
	)
}

// emitStart emits the start event of a forward or reverse pass.
func emitStart(ctx context.Context, reverse bool) {
	if reverse {
		capitan.Emit(ctx, SignalReverseStart)
		return
	}
	capitan.Emit(ctx, SignalHandleStart)
}

// emitComplete emits the completion event of a forward or reverse pass.
func emitComplete(ctx context.Context, reverse bool, duration time.Duration, st stats, err error) {
	sig := SignalHandleComplete
	fields := []capitan.Field{
		KeyDuration.Field(duration),
		KeyPathCount.Field(st.paths),
	}
	if reverse {
		sig = SignalReverseComplete
		fields = append(fields, KeyDecryptedCount.Field(st.decrypted))
	} else {
		fields = append(fields,
			KeyRedactedCount.Field(st.redacted),
			KeyMaskedCount.Field(st.masked),
			KeyEncryptedCount.Field(st.encrypted),
			KeyHashedCount.Field(st.hashed),
			KeyHeuristicCount.Field(st.heuristic),
		)
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, sig, fields...)
	} else {
		capitan.Emit(ctx, sig, fields...)
	}
}

// emitProcessorComplete emits an event when a processor call finishes.
func emitProcessorComplete(ctx context.Context, reveal bool, contentType string, size int, duration time.Duration, err error) {
	sig := SignalProtectComplete
	if reveal {
		sig = SignalRevealComplete
	}
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyPayloadSize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, sig, fields...)
	} else {
		capitan.Emit(ctx, sig, fields...)
	}
}
