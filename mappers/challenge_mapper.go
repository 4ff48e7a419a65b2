// file: mappers/challenge_mapper.go
package mappers

import (
	"github.com/Bellic12/RabbitCTF/dto"
	"github.com/Bellic12/RabbitCTF/models"
)

func MapCreateReqToModel(req dto.CreateChallengeReq) models.Challenge {
	caseSensitive := true
	if req.CaseSensitive != nil {
		caseSensitive = *req.CaseSensitive
	}
	return models.Challenge{
		ChallengeName: req.ChallengeName,
		CategoryID:    req.CategoryID,
		Author:        req.Author,
		Description:   req.Description,
		Hint:          req.Hint,
		Difficulty:    models.ChallengeDifficulty(req.Difficulty),
		Flag:          req.Flag,
		CaseSensitive: caseSensitive,
		AttemptLimit:  req.AttemptLimit,
		CurrentScore:  req.BaseScore, // 初始展示分 = 基础分
		ScoreConfig: models.ScoreConfig{
			Mode:        models.ScoringMode(req.Mode),
			BaseScore:   req.BaseScore,
			DecayFactor: req.DecayFactor,
			MinScore:    req.MinScore,
		},
	}
}

func MapModelToItemResp(ch models.Challenge) dto.ChallengeItemResp {
	return dto.ChallengeItemResp{
		ID:            ch.ID,
		ChallengeName: ch.ChallengeName,
		Category:      ch.Category.CategoryName,
		Difficulty:    string(ch.Difficulty),
		Mode:          string(ch.ScoreConfig.Mode),
		CurrentScore:  ch.CurrentScore,
		SolvedCount:   ch.SolvedCount,
	}
}

func MapModelToDetailResp(ch models.Challenge) dto.ChallengeDetailResp {
	return dto.ChallengeDetailResp{
		ID:            ch.ID,
		ChallengeName: ch.ChallengeName,
		Category:      ch.Category.CategoryName,
		Author:        ch.Author,
		Description:   ch.Description,
		Hint:          ch.Hint,
		Mode:          string(ch.ScoreConfig.Mode),
		Difficulty:    string(ch.Difficulty),
		CurrentScore:  ch.CurrentScore,
		SolvedCount:   ch.SolvedCount,
	}
}

func MapModelToAdminDetailResp(ch models.Challenge) dto.AdminChallengeDetailResp {
	return dto.AdminChallengeDetailResp{
		ID:            ch.ID,
		ChallengeName: ch.ChallengeName,
		Category:      ch.Category.CategoryName,
		Author:        ch.Author,
		Description:   ch.Description,
		Hint:          ch.Hint,
		Mode:          string(ch.ScoreConfig.Mode),
		Difficulty:    string(ch.Difficulty),
		State:         string(ch.State),
		Flag:          ch.Flag,
		CaseSensitive: ch.CaseSensitive,
		AttemptLimit:  ch.AttemptLimit,
		BaseScore:     ch.ScoreConfig.BaseScore,
		DecayFactor:   ch.ScoreConfig.DecayFactor,
		MinScore:      ch.ScoreConfig.MinScore,
		CurrentScore:  ch.CurrentScore,
		SolvedCount:   ch.SolvedCount,
		CreatedAt:     ch.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     ch.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
