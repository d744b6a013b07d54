package rdb

import (
	"time"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/uptrace/bun"
)

// PlayerArchiveModel is the database model for the player_archives table:
// one row per player, carrying the precomputed composite RKS.
type PlayerArchiveModel struct {
	bun.BaseModel `bun:"table:player_archives,alias:pa"`

	PlayerID   string    `bun:"player_id,pk,type:text"`
	PlayerName string    `bun:"player_name,notnull,type:text"`
	RKS        float64   `bun:"rks,notnull,default:0"`
	UpdateTime time.Time `bun:"update_time,nullzero,notnull,default:current_timestamp"`
}

// ToEntity converts the row into the read-model header fields of a
// PlayerArchive; the caller fills in Current/History/PushAcc separately.
func (m *PlayerArchiveModel) ToEntity() *entity.PlayerArchive {
	return &entity.PlayerArchive{
		PlayerID:     m.PlayerID,
		PlayerName:   m.PlayerName,
		CompositeRKS: m.RKS,
		UpdateTime:   m.UpdateTime,
		History:      map[entity.ChartKey][]*entity.ScoreRow{},
		PushAcc:      map[entity.ChartKey]float64{},
	}
}

// ChartScoreModel is the database model for the chart_scores table. Exactly
// one row per (PlayerID, SongID, Difficulty) has IsCurrent set; the rest
// are retained history, pruned to HistoryMaxRecords deep.
type ChartScoreModel struct {
	bun.BaseModel `bun:"table:chart_scores,alias:cs"`

	ID         string    `bun:"id,pk,type:text"`
	PlayerID   string    `bun:"player_id,notnull,type:text"`
	SongID     string    `bun:"song_id,notnull,type:text"`
	Difficulty int       `bun:"difficulty,notnull"`
	Score      int64     `bun:"score,notnull"`
	Acc        float64   `bun:"acc,notnull"`
	RKS        float64   `bun:"rks,notnull,default:0"`
	IsFC       bool      `bun:"is_fc,notnull,default:false"`
	IsAP       bool      `bun:"is_ap,notnull,default:false"`
	IsLegacy   bool      `bun:"is_legacy,notnull,default:false"`
	IsCurrent  bool      `bun:"is_current,notnull,default:true"`
	PlayTime   time.Time `bun:"play_time,nullzero,notnull,default:current_timestamp"`
}

// ToEntity converts the row into an entity.ScoreRow.
func (m *ChartScoreModel) ToEntity() *entity.ScoreRow {
	return &entity.ScoreRow{
		ID:         m.ID,
		PlayerID:   m.PlayerID,
		SongID:     m.SongID,
		Difficulty: entity.Difficulty(m.Difficulty),
		Score:      uint32(m.Score),
		Acc:        m.Acc,
		RKS:        m.RKS,
		IsFC:       m.IsFC,
		IsAP:       m.IsAP,
		IsLegacy:   m.IsLegacy,
		IsCurrent:  m.IsCurrent,
		PlayTime:   m.PlayTime,
	}
}

// FromScoreRow converts a domain score row into its database model for
// insertion.
func FromScoreRow(row *entity.ScoreRow) *ChartScoreModel {
	return &ChartScoreModel{
		ID:         row.ID,
		PlayerID:   row.PlayerID,
		SongID:     row.SongID,
		Difficulty: int(row.Difficulty),
		Score:      int64(row.Score),
		Acc:        row.Acc,
		RKS:        row.RKS,
		IsFC:       row.IsFC,
		IsAP:       row.IsAP,
		IsLegacy:   row.IsLegacy,
		IsCurrent:  row.IsCurrent,
		PlayTime:   row.PlayTime,
	}
}

// PushAccModel is the database model for the push_acc table: one row per
// chart a player has not yet maxed.
type PushAccModel struct {
	bun.BaseModel `bun:"table:push_acc,alias:pu"`

	PlayerID   string  `bun:"player_id,pk,type:text"`
	SongID     string  `bun:"song_id,pk,type:text"`
	Difficulty int     `bun:"difficulty,pk"`
	PushAcc    float64 `bun:"push_acc,notnull"`
}

// ToEntity converts the row into an entity.PushAccRow.
func (m *PushAccModel) ToEntity() *entity.PushAccRow {
	return &entity.PushAccRow{
		PlayerID:   m.PlayerID,
		SongID:     m.SongID,
		Difficulty: entity.Difficulty(m.Difficulty),
		PushAcc:    m.PushAcc,
	}
}

// InternalUserModel is the database model for the internal_users table.
type InternalUserModel struct {
	bun.BaseModel `bun:"table:internal_users,alias:iu"`

	ID         string    `bun:"id,pk,type:text"`
	CreateTime time.Time `bun:"create_time,nullzero,notnull,default:current_timestamp"`
}

// ToEntity converts the row into an entity.InternalUser.
func (m *InternalUserModel) ToEntity() *entity.InternalUser {
	return &entity.InternalUser{ID: m.ID, CreateTime: m.CreateTime}
}

// PlatformBindingModel is the database model for the platform_bindings
// table.
type PlatformBindingModel struct {
	bun.BaseModel `bun:"table:platform_bindings,alias:pb"`

	ID             string    `bun:"id,pk,type:text"`
	InternalUserID string    `bun:"internal_user_id,notnull,type:text"`
	Platform       string    `bun:"platform,notnull,type:text"`
	PlatformID     string    `bun:"platform_id,notnull,type:text"`
	SessionToken   string    `bun:"session_token,notnull,type:text"`
	CreateTime     time.Time `bun:"create_time,nullzero,notnull,default:current_timestamp"`
	UpdateTime     time.Time `bun:"update_time,nullzero,notnull,default:current_timestamp"`
}

// ToEntity converts the row into an entity.PlatformBinding.
func (m *PlatformBindingModel) ToEntity() *entity.PlatformBinding {
	return &entity.PlatformBinding{
		ID:             m.ID,
		InternalUserID: m.InternalUserID,
		Platform:       m.Platform,
		PlatformID:     m.PlatformID,
		SessionToken:   m.SessionToken,
		CreateTime:     m.CreateTime,
		UpdateTime:     m.UpdateTime,
	}
}

// UnbindVerificationCodeModel is the database model for the
// unbind_verification_codes table.
type UnbindVerificationCodeModel struct {
	bun.BaseModel `bun:"table:unbind_verification_codes,alias:uvc"`

	Platform     string    `bun:"platform,pk,type:text"`
	PlatformID   string    `bun:"platform_id,pk,type:text"`
	Code         string    `bun:"code,notnull,type:text"`
	SessionToken string    `bun:"session_token,notnull,type:text"`
	ExpiresAt    time.Time `bun:"expires_at,notnull"`
}

// ToEntity converts the row into an entity.UnbindVerificationCode.
func (m *UnbindVerificationCodeModel) ToEntity() *entity.UnbindVerificationCode {
	return &entity.UnbindVerificationCode{
		Platform:     m.Platform,
		PlatformID:   m.PlatformID,
		Code:         m.Code,
		SessionToken: m.SessionToken,
		ExpiresAt:    m.ExpiresAt,
	}
}

// FromUnbindVerificationCode converts the domain type into its database
// model for insertion.
func FromUnbindVerificationCode(code *entity.UnbindVerificationCode) *UnbindVerificationCodeModel {
	return &UnbindVerificationCodeModel{
		Platform:     code.Platform,
		PlatformID:   code.PlatformID,
		Code:         code.Code,
		SessionToken: code.SessionToken,
		ExpiresAt:    code.ExpiresAt,
	}
}
