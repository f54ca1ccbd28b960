package combat

import (
	"fmt"
	"math/rand"

	"github.com/zeusync/dungeoncore/internal/core/npc"
)

// SoundProfile parametrises a synthesised gunshot: a tonal crack that
// sweeps from Pitch down to Drop over Decay seconds, mixed with Noise.
type SoundProfile struct {
	Pitch  float64
	Drop   float64
	Decay  float64
	Noise  float64
	Volume float64
}

// enemySounds gives every shooting archetype a recognisable report.
var enemySounds = map[npc.Kind]SoundProfile{
	npc.KindRanged: {Pitch: 520, Drop: 90, Decay: 0.18, Noise: 0.7, Volume: 0.12},
	npc.KindFlyer:  {Pitch: 1400, Drop: 420, Decay: 0.08, Noise: 0.2, Volume: 0.1},
}

// EnemySound is the gunshot profile of an enemy archetype.
func EnemySound(k npc.Kind) SoundProfile {
	return enemySounds[k]
}

// Weapon is one procedurally rolled player gun.
type Weapon struct {
	Name        string
	BulletSpeed float64
	// FirePeriod is the minimum time between shots, in seconds.
	FirePeriod float64
	Damage     float64
	Recoil     float64
	Sound      SoundProfile
}

// NewWeapon rolls a gun. Its stats follow from the rolled proportions: a
// longer barrel shoots faster bullets, a longer body fires more often and
// a heavier barrel hits harder.
func NewWeapon(serial int, rng *rand.Rand) Weapon {
	bodyLength := randRange(rng, 90, 140)
	bodyHeight := randRange(rng, 40, 60)
	barrelLength := randRange(rng, 80, 200)
	barrelDiameter := randRange(rng, 10, 15)

	power := barrelLength * barrelDiameter
	w := Weapon{
		BulletSpeed: 60 + barrelLength/200*40,
		FirePeriod:  (500 - bodyLength/140*400 + randRange(rng, 0, 50)) / 1000,
		Damage:      10 + power/3000*5,
		Recoil:      max(0.2, power/(bodyLength*bodyHeight)*2.5),
	}
	w.Sound = SoundProfile{
		Pitch:  1200 - power/3000*700,
		Decay:  0.08 + bodyLength/140*0.12,
		Noise:  0.4 + power/3000*0.5,
		Volume: 0.1 + (w.Damage-10)/5*0.08,
	}
	w.Sound.Drop = w.Sound.Pitch / 8
	w.Name = fmt.Sprintf("%s Mk%d", weaponClass(w), serial)
	return w
}

func weaponClass(w Weapon) string {
	switch {
	case w.FirePeriod < 0.17:
		return "SMG"
	case w.Damage > 13.5:
		return "Rifle"
	default:
		return "Carbine"
	}
}

// Arsenal is the player's loadout. Only the selected weapon fires, and no
// faster than its fire period.
type Arsenal struct {
	Weapons []Weapon

	current  int
	lastShot float64
	fired    bool
}

func NewArsenal(n int, rng *rand.Rand) *Arsenal {
	a := &Arsenal{Weapons: make([]Weapon, 0, n)}
	for i := 0; i < n; i++ {
		a.Weapons = append(a.Weapons, NewWeapon(i+1, rng))
	}
	return a
}

func (a *Arsenal) Index() int { return a.current }

// Current returns the selected weapon, false if the arsenal is empty.
func (a *Arsenal) Current() (Weapon, bool) {
	if len(a.Weapons) == 0 {
		return Weapon{}, false
	}
	return a.Weapons[a.current], true
}

// Select switches weapons. Out-of-range indices are ignored.
func (a *Arsenal) Select(i int) bool {
	if i < 0 || i >= len(a.Weapons) || i == a.current {
		return false
	}
	a.current = i
	return true
}

// Trigger fires the selected weapon at time now if its fire period has
// passed since the last shot.
func (a *Arsenal) Trigger(now float64) (Weapon, bool) {
	w, ok := a.Current()
	if !ok {
		return Weapon{}, false
	}
	if a.fired && now-a.lastShot < w.FirePeriod {
		return Weapon{}, false
	}
	a.fired, a.lastShot = true, now
	return w, true
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
