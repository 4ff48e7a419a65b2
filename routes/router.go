// file: routes/router.go
package routes

import (
	"github.com/Bellic12/RabbitCTF/controllers"
	"github.com/Bellic12/RabbitCTF/middlewares"
	"github.com/Bellic12/RabbitCTF/models"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 用户 ---
		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", controllers.Register)
			usersPublic.POST("/login", controllers.Login)
		}
		usersAuth := apiV1.Group("/users")
		usersAuth.Use(middlewares.JWTAuthMiddleware())
		{
			usersAuth.GET("/:id", controllers.GetUserDetail)
		}
		adminUserRoutes := apiV1.Group("/admin/users")
		adminUserRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminUserRoutes.GET("", controllers.GetUserList)
			adminUserRoutes.PUT("/:id/status", controllers.UpdateUserStatus)
		}

		// --- 队伍 ---
		teamRoutes := apiV1.Group("/teams")
		teamRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			teamRoutes.POST("", controllers.CreateTeam)
			teamRoutes.POST("/join", controllers.JoinTeam)
			teamRoutes.POST("/leave", controllers.LeaveTeam)
			teamRoutes.GET("/:id", controllers.GetTeamDetail)
			teamRoutes.GET("/:id/solves", controllers.GetTeamSolves)
		}

		// --- 题目分类 ---
		categoryRoutes := apiV1.Group("/categories")
		{
			categoryRoutes.GET("", controllers.GetCategoryList)
			categoryRoutes.POST("", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.CreateCategory)
			categoryRoutes.DELETE("/:id", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.DeleteCategory)
		}

		// --- 题目 ---
		challengeRoutes := apiV1.Group("/challenges")
		{
			// 用户接口
			challengeRoutes.GET("", middlewares.JWTAuthMiddleware(), controllers.ListChallenges)
			challengeRoutes.GET("/:id", middlewares.JWTAuthMiddleware(), controllers.GetChallengeDetail)
			challengeRoutes.GET("/:id/stats", middlewares.JWTAuthMiddleware(), controllers.GetChallengeStats)
			challengeRoutes.POST("/:id/submit", middlewares.JWTAuthMiddleware(), controllers.SubmitFlag)

			// 管理员接口
			challengeRoutes.POST("", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.CreateChallenge)
			challengeRoutes.PUT("/:id", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.UpdateChallenge)
			challengeRoutes.GET("/:id/admin", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.AdminGetChallengeDetail)
			challengeRoutes.POST("/:id/recalculate", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.RecalculateChallenge)
		}

		// --- 提交台账 ---
		submissionRoutes := apiV1.Group("/submissions")
		submissionRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			submissionRoutes.GET("/mine", controllers.GetMySubmissions)
			submissionRoutes.GET("/recent", controllers.GetRecentSolves)
		}
		adminSubmissionRoutes := apiV1.Group("/admin/submissions")
		adminSubmissionRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminSubmissionRoutes.GET("", controllers.GetSubmissionLogs)
			adminSubmissionRoutes.DELETE("/:id", controllers.DeleteSubmission)
		}

		// --- 排行榜与赛事 ---
		apiV1.GET("/leaderboard", controllers.GetLeaderboard)
		apiV1.GET("/event", controllers.GetCurrentEvent)
		apiV1.PUT("/event", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.UpsertEvent)
	}

	return r
}
