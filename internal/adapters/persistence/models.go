package persistence

import (
	"time"
)

// GameModel represents the games table: one row per game with its current
// lifecycle state.
type GameModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Year      int       `gorm:"column:year;not null"`
	State     string    `gorm:"column:state;not null;index"`
	Players   int       `gorm:"column:players;not null"`
	Seed      int64     `gorm:"column:seed;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (GameModel) TableName() string {
	return "games"
}

// GameSnapshotModel represents the game_snapshots table
type GameSnapshotModel struct {
	GameID      string     `gorm:"column:game_id;primaryKey"`
	Year        int        `gorm:"column:year;primaryKey"`
	Game        *GameModel `gorm:"foreignKey:GameID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Compression string     `gorm:"column:compression;not null"`
	Digest      string     `gorm:"column:digest;not null"`
	Data        []byte     `gorm:"column:data;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
}

func (GameSnapshotModel) TableName() string {
	return "game_snapshots"
}

// TurnOrderModel represents the turn_orders table
type TurnOrderModel struct {
	GameID      string    `gorm:"column:game_id;primaryKey"`
	Year        int       `gorm:"column:year;primaryKey"`
	PlayerNum   int       `gorm:"column:player_num;primaryKey"`
	Payload     string    `gorm:"column:payload;type:text;not null"` // JSON as text
	SubmittedAt time.Time `gorm:"column:submitted_at;not null"`
}

func (TurnOrderModel) TableName() string {
	return "turn_orders"
}

// BattleRecordModel represents the battle_records table
type BattleRecordModel struct {
	ID      string `gorm:"column:id;primaryKey"`
	GameID  string `gorm:"column:game_id;not null;index:idx_battle_game_year"`
	Year    int    `gorm:"column:year;not null;index:idx_battle_game_year"`
	Seq     int    `gorm:"column:seq;not null"` // order fought within the year
	Players string `gorm:"column:players;type:text"`          // JSON array as text
	Payload string `gorm:"column:payload;type:text;not null"` // JSON as text
}

func (BattleRecordModel) TableName() string {
	return "battle_records"
}
