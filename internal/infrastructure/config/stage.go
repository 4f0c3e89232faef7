package config

// StageConfig is the root config for stage files
type StageConfig struct {
	ID          string             `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	PlayerSpawn *PointConfig       `json:"playerSpawn,omitempty" yaml:"playerSpawn,omitempty"` // nil = centre of the move range
	Enemies     []EnemySpawnConfig `json:"enemies" yaml:"enemies"`
	Walls       WallsConfig        `json:"walls" yaml:"walls"`
}

type EnemySpawnConfig struct {
	Type      string      `json:"type" yaml:"type"`
	X         float64     `json:"x" yaml:"x"`
	Y         float64     `json:"y" yaml:"y"`
	Facing    float64     `json:"facing" yaml:"facing"` // degrees, 0 = +X
	MoveRange *RectConfig `json:"moveRange,omitempty" yaml:"moveRange,omitempty"`
}

type WallsConfig struct {
	// Border closes the screen edges with four segments
	Border   bool            `json:"border" yaml:"border"`
	Segments []SegmentConfig `json:"segments" yaml:"segments"`
}

type SegmentConfig struct {
	A PointConfig `json:"a" yaml:"a"`
	B PointConfig `json:"b" yaml:"b"`
}
