package sim

import (
	"sync"

	"github.com/zeusync/dungeoncore/internal/core/player"
)

type IntentType string

const (
	IntentMove     IntentType = "move"
	IntentLook     IntentType = "look"
	IntentInteract IntentType = "interact"
	IntentFire     IntentType = "fire"
	IntentWeapon   IntentType = "weapon"
	IntentPause    IntentType = "pause"
	IntentResume   IntentType = "resume"
)

// LookIntent carries absolute view angles in radians.
type LookIntent struct {
	Yaw   float64
	Pitch float64
}

// Intent is one input captured between ticks. Move carries the full set of
// held keys, replacing the previous one. Interact and Fire are edges.
type Intent struct {
	Type   IntentType
	Move   *player.Input
	Look   *LookIntent
	Weapon int
}

func Move(in player.Input) Intent    { return Intent{Type: IntentMove, Move: &in} }
func Look(yaw, pitch float64) Intent { return Intent{Type: IntentLook, Look: &LookIntent{yaw, pitch}} }
func Interact() Intent               { return Intent{Type: IntentInteract} }
func Fire() Intent                   { return Intent{Type: IntentFire} }
func SelectWeapon(index int) Intent  { return Intent{Type: IntentWeapon, Weapon: index} }
func Pause() Intent                  { return Intent{Type: IntentPause} }
func Resume() Intent                 { return Intent{Type: IntentResume} }

// IntentBuffer stages intents in a fixed-size ring. It is safe for
// concurrent producers and a single consumer.
type IntentBuffer struct {
	mu       sync.Mutex
	data     []Intent
	head     int
	tail     int
	count    int
	overflow uint64
}

func NewIntentBuffer(capacity int) *IntentBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &IntentBuffer{data: make([]Intent, capacity)}
}

func (b *IntentBuffer) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Push stages an intent, returning false if the buffer is full.
func (b *IntentBuffer) Push(in Intent) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count == len(b.data) {
		b.overflow++
		return false
	}
	b.data[b.tail] = in
	b.tail = (b.tail + 1) % len(b.data)
	b.count++
	return true
}

// Drain returns all staged intents in FIFO order and clears the buffer.
func (b *IntentBuffer) Drain() []Intent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count == 0 {
		return nil
	}
	out := make([]Intent, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.data[(b.head+i)%len(b.data)]
	}
	b.head, b.tail, b.count = 0, 0, 0
	return out
}

func (b *IntentBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Overflow counts intents rejected because the buffer was full.
func (b *IntentBuffer) Overflow() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overflow
}
