package config

// EntitiesConfig is the root config for entities.yaml
type EntitiesConfig struct {
	Player      ActorConfig                 `json:"player" yaml:"player"`
	Enemies     map[string]ActorConfig      `json:"enemies" yaml:"enemies"`
	Projectiles map[string]ProjectileConfig `json:"projectiles" yaml:"projectiles"`
	// Clips maps clip names to durations in seconds; 0 loops
	Clips map[string]float64 `json:"clips" yaml:"clips"`
}

type ActorConfig struct {
	Control          string           `json:"control" yaml:"control"` // input, wander or free
	MoveSpeed        float64          `json:"moveSpeed" yaml:"moveSpeed"`
	MoveRange        RectConfig       `json:"moveRange" yaml:"moveRange"`
	AttackInterval   float64          `json:"attackInterval" yaml:"attackInterval"`
	MoveInterval     float64          `json:"moveInterval" yaml:"moveInterval"`
	FireInterval     float64          `json:"fireInterval" yaml:"fireInterval"`
	ContinuousFire   bool             `json:"continuousFire" yaml:"continuousFire"`
	LockMoveOnAttack bool             `json:"lockMoveOnAttack" yaml:"lockMoveOnAttack"`
	Projectile       string           `json:"projectile,omitempty" yaml:"projectile,omitempty"`
	ShootOffset      *PointConfig     `json:"shootOffset,omitempty" yaml:"shootOffset,omitempty"`
	Animations       AnimationsConfig `json:"animations" yaml:"animations"`
	Body             BodyConfig       `json:"body" yaml:"body"`
	LaunchSpeed      float64          `json:"launchSpeed,omitempty" yaml:"launchSpeed,omitempty"` // initial speed of free actors
	Bounces          bool             `json:"bounces" yaml:"bounces"`
}

type AnimationsConfig struct {
	Idle   string `json:"idle" yaml:"idle"`
	Attack string `json:"attack" yaml:"attack"`
	Hit    string `json:"hit" yaml:"hit"`
}

type BodyConfig struct {
	Width          float64 `json:"width" yaml:"width"`
	Height         float64 `json:"height" yaml:"height"`
	Mass           float64 `json:"mass" yaml:"mass"`
	LinearDamping  float64 `json:"linearDamping" yaml:"linearDamping"`
	AngularDamping float64 `json:"angularDamping" yaml:"angularDamping"`
	Elasticity     float64 `json:"elasticity" yaml:"elasticity"`
	Friction       float64 `json:"friction" yaml:"friction"`
	LockRotation   bool    `json:"lockRotation" yaml:"lockRotation"`
}

type ProjectileConfig struct {
	Speed          float64    `json:"speed" yaml:"speed"`
	Lifetime       float64    `json:"lifetime" yaml:"lifetime"`
	KnockbackForce float64    `json:"knockbackForce" yaml:"knockbackForce"`
	RotationForce  float64    `json:"rotationForce" yaml:"rotationForce"`
	Body           BodyConfig `json:"body" yaml:"body"`
}

type RectConfig struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type PointConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ApplyDefaults fills zero values that would otherwise break the simulation
func (c *EntitiesConfig) ApplyDefaults() {
	c.Player.applyDefaults()
	for name, e := range c.Enemies {
		e.applyDefaults()
		c.Enemies[name] = e
	}
	for name, p := range c.Projectiles {
		if p.Lifetime <= 0 {
			p.Lifetime = 3
		}
		p.Body.applyDefaults()
		c.Projectiles[name] = p
	}
	if c.Clips == nil {
		c.Clips = make(map[string]float64)
	}
}

func (a *ActorConfig) applyDefaults() {
	if a.Control == "" {
		a.Control = "wander"
	}
	if a.Animations.Idle == "" {
		a.Animations.Idle = "idle"
	}
	a.Body.applyDefaults()
}

func (b *BodyConfig) applyDefaults() {
	if b.Width <= 0 {
		b.Width = 32
	}
	if b.Height <= 0 {
		b.Height = 32
	}
	if b.Mass <= 0 {
		b.Mass = 1
	}
}
