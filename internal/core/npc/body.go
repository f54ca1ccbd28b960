package npc

import (
	"fmt"

	"github.com/zeusync/dungeoncore/internal/core/systems/physics"
)

// Anchor names looked up by behaviours.
const (
	AnchorHead   = "head"
	AnchorMuzzle = "muzzle"
)

// Part is one visual piece of an enemy. Offset is local to the enemy origin
// with +Z forward, +X right and Y up. On death every part becomes debris.
type Part struct {
	Name   string
	Offset physics.Vec3
	Size   physics.Vec3
}

// Body is the part list, the named anchors and the hit cylinder of an enemy.
type Body struct {
	Parts   []Part
	Anchors map[string]physics.Vec3
	Radius  float64
	Height  float64
}

// skeletonBody is the humanoid used by melee and ranged enemies. Armed
// skeletons carry a gun on the right arm with a muzzle anchor at its tip.
func skeletonBody(armed bool) Body {
	const (
		legLength   = 0.9
		torsoHeight = 0.8
		torsoWidth  = 0.5
		limb        = 0.12
	)
	b := Body{
		Parts: []Part{
			{Name: "leftLeg", Offset: physics.V3(-torsoWidth/4, legLength/2, 0), Size: physics.V3(limb, legLength, limb)},
			{Name: "rightLeg", Offset: physics.V3(torsoWidth/4, legLength/2, 0), Size: physics.V3(limb, legLength, limb)},
			{Name: "torso", Offset: physics.V3(0, legLength+torsoHeight/2, 0), Size: physics.V3(torsoWidth, torsoHeight, torsoWidth/2)},
			{Name: "head", Offset: physics.V3(0, legLength+torsoHeight+0.2, 0), Size: physics.V3(0.35, 0.35, 0.35)},
			{Name: "leftArm", Offset: physics.V3(-torsoWidth/2-limb, legLength+torsoHeight/2, 0), Size: physics.V3(limb, 0.75, limb)},
			{Name: "rightArm", Offset: physics.V3(torsoWidth/2+limb, legLength+torsoHeight/2, 0), Size: physics.V3(limb, 0.75, limb)},
			{Name: "leftShoe", Offset: physics.V3(-torsoWidth/4, 0.05, 0.05), Size: physics.V3(0.16, 0.1, 0.28)},
			{Name: "rightShoe", Offset: physics.V3(torsoWidth/4, 0.05, 0.05), Size: physics.V3(0.16, 0.1, 0.28)},
		},
		Anchors: map[string]physics.Vec3{
			AnchorHead: physics.V3(0, legLength+torsoHeight+0.2, 0),
		},
		Radius: 0.6,
		Height: 2.4,
	}
	if armed {
		b.Parts = append(b.Parts, Part{
			Name:   "gun",
			Offset: physics.V3(torsoWidth/2+limb, legLength+torsoHeight/2-0.3, 0.35),
			Size:   physics.V3(0.1, 0.1, 0.9),
		})
		b.Anchors[AnchorMuzzle] = physics.V3(torsoWidth/2+limb, legLength+torsoHeight/2-0.3, 0.85)
	}
	return b
}

// scuttlerBody is the low six-legged swarm body.
func scuttlerBody() Body {
	b := Body{
		Parts: []Part{
			{Name: "body", Offset: physics.V3(0, 0.4, 0), Size: physics.V3(0.5, 0.35, 0.9)},
			{Name: "head", Offset: physics.V3(0, 0.45, 0.5), Size: physics.V3(0.3, 0.3, 0.3)},
		},
		Anchors: map[string]physics.Vec3{AnchorHead: physics.V3(0, 0.45, 0.5)},
		Radius:  0.6,
		Height:  0.8,
	}
	for i := 0; i < 6; i++ {
		side := -1.0
		if i%2 == 1 {
			side = 1
		}
		z := float64(i/2)*0.3 - 0.3
		b.Parts = append(b.Parts, Part{
			Name:   fmt.Sprintf("leg%d", i),
			Offset: physics.V3(side*0.35, 0.25, z),
			Size:   physics.V3(0.06, 0.4, 0.06),
		})
	}
	return b
}

// sentinelBody is the floating orb of the flyer. Offsets are relative to
// the hover centre, so the hit cylinder is centred on the flyer's altitude.
func sentinelBody() Body {
	b := Body{
		Parts: []Part{
			{Name: "body", Offset: physics.V3(0, 0, 0), Size: physics.V3(0.9, 0.9, 0.9)},
			{Name: "eye", Offset: physics.V3(0, 0, 0.4), Size: physics.V3(0.22, 0.22, 0.22)},
		},
		Anchors: map[string]physics.Vec3{
			AnchorHead:   physics.V3(0, 0, 0.4),
			AnchorMuzzle: physics.V3(0, 0, 0.55),
		},
		Radius: 0.8,
		Height: 1.2,
	}
	for i := 0; i < 4; i++ {
		x, z := 0.0, 0.0
		switch i {
		case 0:
			x = 0.5
		case 1:
			x = -0.5
		case 2:
			z = 0.5
		case 3:
			z = -0.5
		}
		b.Parts = append(b.Parts, Part{
			Name:   fmt.Sprintf("panel%d", i),
			Offset: physics.V3(x, 0, z),
			Size:   physics.V3(0.36, 0.09, 0.36),
		})
	}
	return b
}
