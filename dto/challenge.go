// file: dto/challenge.go
package dto

import (
	"strings"
	"time"
)

// ========== 请求 DTO ==========

type CreateChallengeReq struct {
	// 规范字段（snake_case）
	ChallengeName string  `json:"challenge_name"`
	CategoryID    uint32  `json:"category_id"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	Hint          string  `json:"hint"`
	Difficulty    string  `json:"difficulty"` // easy / medium / hard / insane
	Flag          string  `json:"flag"`
	CaseSensitive *bool   `json:"case_sensitive"` // 缺省为 true
	AttemptLimit  int     `json:"attempt_limit"`
	Mode          string  `json:"mode"` // static / dynamic
	BaseScore     int     `json:"base_score"`
	DecayFactor   float64 `json:"decay_factor"`
	MinScore      int     `json:"min_score"`

	// 仅用于兼容旧客户端（camelCase 变体），别名与上面的 tag 不重复
	ChallengeNameCamel string  `json:"challengeName"`
	CategoryIDCamel    uint32  `json:"categoryId"`
	BaseScoreCamel     int     `json:"baseScore"`
	DecayFactorCamel   float64 `json:"decayFactor"`
	MinScoreCamel      int     `json:"minScore"`
	CaseSensitiveCamel *bool   `json:"caseSensitive"`
}

// Normalize: 将 camelCase 别名归一化到 snake_case，并做轻量清洗/默认值处理
func (r *CreateChallengeReq) Normalize() {
	if r.ChallengeName == "" && r.ChallengeNameCamel != "" {
		r.ChallengeName = r.ChallengeNameCamel
	}
	if r.CategoryID == 0 && r.CategoryIDCamel != 0 {
		r.CategoryID = r.CategoryIDCamel
	}
	if r.BaseScore == 0 && r.BaseScoreCamel != 0 {
		r.BaseScore = r.BaseScoreCamel
	}
	if r.DecayFactor == 0 && r.DecayFactorCamel != 0 {
		r.DecayFactor = r.DecayFactorCamel
	}
	if r.MinScore == 0 && r.MinScoreCamel != 0 {
		r.MinScore = r.MinScoreCamel
	}
	if r.CaseSensitive == nil && r.CaseSensitiveCamel != nil {
		r.CaseSensitive = r.CaseSensitiveCamel
	}

	r.ChallengeName = strings.TrimSpace(r.ChallengeName)
	r.Author = strings.TrimSpace(r.Author)
	r.Description = strings.TrimSpace(r.Description)
	r.Flag = strings.TrimSpace(r.Flag)
	r.Mode = strings.ToLower(strings.TrimSpace(r.Mode))
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))

	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
	if r.Mode == "" {
		r.Mode = "static"
	}
}

type UpdateChallengeReq struct {
	State         *string    `json:"state"` // visible / hidden
	Description   *string    `json:"description"`
	Hint          *string    `json:"hint"`
	Difficulty    *string    `json:"difficulty"`
	Flag          *string    `json:"flag"`
	CaseSensitive *bool      `json:"case_sensitive"`
	AttemptLimit  *int       `json:"attempt_limit"`
	VisibleFrom   *time.Time `json:"visible_from"`
	VisibleUntil  *time.Time `json:"visible_until"`

	// 计分字段：题目一旦有提交记录即拒绝修改
	Mode        *string  `json:"mode"`
	BaseScore   *int     `json:"base_score"`
	DecayFactor *float64 `json:"decay_factor"`
	MinScore    *int     `json:"min_score"`
}

// TouchesScoring 本次更新是否涉及被冻结保护的计分字段
func (r *UpdateChallengeReq) TouchesScoring() bool {
	return r.Mode != nil || r.BaseScore != nil || r.DecayFactor != nil || r.MinScore != nil
}

type SubmitFlagReq struct {
	Flag      string `json:"flag"`
	FlagCamel string `json:"Flag"`
}

func (r *SubmitFlagReq) Normalize() {
	if r.Flag == "" && r.FlagCamel != "" {
		r.Flag = r.FlagCamel
	}
}

// ========== 响应 DTO ==========

type ChallengeItemResp struct {
	ID            uint32 `json:"id"`
	ChallengeName string `json:"challenge_name"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Mode          string `json:"mode"`
	CurrentScore  int    `json:"current_score"`
	SolvedCount   int    `json:"solved_count"`
}

type ChallengeDetailResp struct {
	ID            uint32 `json:"id"`
	ChallengeName string `json:"challenge_name"`
	Category      string `json:"category"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Hint          string `json:"hint"`
	Mode          string `json:"mode"`
	Difficulty    string `json:"difficulty"`
	CurrentScore  int    `json:"current_score"`
	SolvedCount   int    `json:"solved_count"`
}

// ====== Admin 专用响应 DTO ======

type AdminChallengeDetailResp struct {
	ID            uint32  `json:"id"`
	ChallengeName string  `json:"challenge_name"`
	Category      string  `json:"category"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	Hint          string  `json:"hint"`
	Mode          string  `json:"mode"`
	Difficulty    string  `json:"difficulty"`
	State         string  `json:"state"`
	Flag          string  `json:"flag"`
	CaseSensitive bool    `json:"case_sensitive"`
	AttemptLimit  int     `json:"attempt_limit"`
	BaseScore     int     `json:"base_score"`
	DecayFactor   float64 `json:"decay_factor"`
	MinScore      int     `json:"min_score"`
	CurrentScore  int     `json:"current_score"`
	SolvedCount   int     `json:"solved_count"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}
