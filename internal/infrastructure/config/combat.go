package config

// CombatConfig is the root config for combat.json
type CombatConfig struct {
	Display    DisplayConfig    `json:"display" yaml:"display"`
	Physics    PhysicsSettings  `json:"physics" yaml:"physics"`
	Locomotion LocomotionConfig `json:"locomotion" yaml:"locomotion"`
	Bounce     BounceConfig     `json:"bounce" yaml:"bounce"`
	Knockback  KnockbackConfig  `json:"knockback" yaml:"knockback"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int `json:"screenHeight" yaml:"screenHeight"`
	Scale        int `json:"scale" yaml:"scale"`
	Framerate    int `json:"framerate" yaml:"framerate"`
}

type PhysicsSettings struct {
	Substeps   int     `json:"substeps" yaml:"substeps"`
	WallRadius float64 `json:"wallRadius" yaml:"wallRadius"`
	WallInset  float64 `json:"wallInset" yaml:"wallInset"`
}

type LocomotionConfig struct {
	// ArrivalThreshold is the distance under which a wander target counts as reached
	ArrivalThreshold float64 `json:"arrivalThreshold" yaml:"arrivalThreshold"`
}

// BounceConfig tunes wall bounces of free-physics actors
type BounceConfig struct {
	MinSpeed      float64 `json:"minSpeed" yaml:"minSpeed"`           // below this no bounce happens
	Strength      float64 `json:"strength" yaml:"strength"`           // speed multiplier
	Floor         float64 `json:"floor" yaml:"floor"`                 // minimum bounce speed
	RandomFactor  float64 `json:"randomFactor" yaml:"randomFactor"`   // per-axis jitter, fraction of bounce speed
	AngularJitter float64 `json:"angularJitter" yaml:"angularJitter"` // max random angular impulse
	EdgeDeadZone  float64 `json:"edgeDeadZone" yaml:"edgeDeadZone"`   // fallback normal dead zone around the centre
}

type KnockbackConfig struct {
	BodyImpulse       float64 `json:"bodyImpulse" yaml:"bodyImpulse"`
	BodyRotationForce float64 `json:"bodyRotationForce" yaml:"bodyRotationForce"`
	// RecoilTime is how long the initiator's shove is left to physics
	RecoilTime float64 `json:"recoilTime" yaml:"recoilTime"`
}

// ApplyDefaults fills zero values with the standard tuning
func (c *CombatConfig) ApplyDefaults() {
	if c.Display.ScreenWidth <= 0 {
		c.Display.ScreenWidth = 960
	}
	if c.Display.ScreenHeight <= 0 {
		c.Display.ScreenHeight = 640
	}
	if c.Display.Scale <= 0 {
		c.Display.Scale = 1
	}
	if c.Display.Framerate <= 0 {
		c.Display.Framerate = 60
	}
	if c.Physics.Substeps <= 0 {
		c.Physics.Substeps = 1
	}
	if c.Physics.WallRadius <= 0 {
		c.Physics.WallRadius = 4
	}
	if c.Locomotion.ArrivalThreshold <= 0 {
		c.Locomotion.ArrivalThreshold = 4
	}
	if c.Bounce.MinSpeed <= 0 {
		c.Bounce.MinSpeed = 10
	}
	if c.Bounce.Strength <= 0 {
		c.Bounce.Strength = 1
	}
	if c.Bounce.Floor <= 0 {
		c.Bounce.Floor = 50
	}
	if c.Bounce.RandomFactor < 0 {
		c.Bounce.RandomFactor = 0
	}
	if c.Bounce.AngularJitter < 0 {
		c.Bounce.AngularJitter = 0
	}
	if c.Knockback.RecoilTime <= 0 {
		c.Knockback.RecoilTime = 0.2
	}
}
