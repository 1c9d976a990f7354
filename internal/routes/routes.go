package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shearbook/shearbook/internal/audit"
	"github.com/shearbook/shearbook/internal/config"
	"github.com/shearbook/shearbook/internal/handlers"
	infraRepo "github.com/shearbook/shearbook/internal/infra/repository"
	"github.com/shearbook/shearbook/internal/middleware"
	"github.com/shearbook/shearbook/internal/realtime"
	ucAppointment "github.com/shearbook/shearbook/internal/usecase/appointment"
	ucReport "github.com/shearbook/shearbook/internal/usecase/report"
	ucSale "github.com/shearbook/shearbook/internal/usecase/sale"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	notifier *realtime.Notifier,
) *ucAppointment.BackfillGroups {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	posRepo := infraRepo.NewPosGormRepository(db)
	billingRepo := infraRepo.NewBillingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
		notifier,
	)

	createRecurringUC := ucAppointment.NewCreateRecurring(
		scheduleRepo,
		auditDispatcher,
		notifier,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
		notifier,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		scheduleRepo,
		auditDispatcher,
		notifier,
	)

	settleAppointmentUC := ucAppointment.NewSettleAppointment(
		scheduleRepo,
		auditDispatcher,
		notifier,
	)

	listWindowUC := ucAppointment.NewListWindow(
		scheduleRepo,
		cfg.WindowBehindDays,
		cfg.WindowAheadDays,
	)

	expandSeriesUC := ucAppointment.NewExpandSeries(scheduleRepo)

	deleteSeriesUC := ucAppointment.NewDeleteSeries(
		scheduleRepo,
		auditDispatcher,
		notifier,
	)

	backfillUC := ucAppointment.NewBackfillGroups(
		scheduleRepo,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — SALES & REPORTS
	// ======================================================
	createSaleUC := ucSale.NewCreateSale(posRepo, auditDispatcher, notifier)
	editAmountsUC := ucSale.NewEditAmounts(posRepo, auditDispatcher, notifier)
	deleteSaleUC := ucSale.NewDeleteSale(posRepo, auditDispatcher, notifier)

	commissionUC := ucReport.NewCommissionStatement(billingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	productHandler := handlers.NewProductHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		createRecurringUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		settleAppointmentUC,
		listWindowUC,
		expandSeriesUC,
		deleteSeriesUC,
		backfillUC,
	)

	saleHandler := handlers.NewSaleHandler(
		posRepo,
		createSaleUC,
		editAmountsUC,
		deleteSaleUC,
	)

	reportHandler := handlers.NewReportHandler(commissionUC)
	blockHandler := handlers.NewScheduleBlockHandler(scheduleRepo, notifier)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/barbers", barberHandler.List)
			secured.PATCH("/me/barbers/:id/rates", barberHandler.UpdateRates)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.DELETE("/me/clients/:id", clientHandler.Delete)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/products", productHandler.List)
			secured.POST("/me/products", productHandler.Create)
			secured.PATCH("/me/products/:id", productHandler.Update)
			secured.POST("/me/products/:id/stock", productHandler.AdjustStock)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.POST("/me/appointments/recurring", appointmentHandler.CreateRecurring)
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/settle", appointmentHandler.Settle)

			secured.GET("/me/series/:groupId", appointmentHandler.ExpandSeries)
			secured.DELETE("/me/series/:groupId", appointmentHandler.DeleteSeries)
			secured.POST("/me/series/backfill", appointmentHandler.Backfill)

			// ------------------------------
			// SCHEDULE BLOCKS
			// ------------------------------
			secured.GET("/me/blocks", blockHandler.List)
			secured.POST("/me/blocks", blockHandler.Create)
			secured.DELETE("/me/blocks/:id", blockHandler.Delete)

			// ------------------------------
			// SALES & REPORTS
			// ------------------------------
			secured.GET("/me/sales", saleHandler.List)
			secured.POST("/me/sales", saleHandler.Create)
			secured.GET("/me/sales/:id", saleHandler.Get)
			secured.PATCH("/me/sales/:id/amounts", saleHandler.EditAmounts)
			secured.DELETE("/me/sales/:id", saleHandler.Delete)

			secured.GET("/me/reports/commission", reportHandler.Commission)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	return backfillUC
}
