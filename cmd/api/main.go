package main

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/leadwise/crm-backend-go/internal/config"
	appHTTP "github.com/leadwise/crm-backend-go/internal/handler/http"
	"github.com/leadwise/crm-backend-go/internal/pkg/cache"
	"github.com/leadwise/crm-backend-go/internal/pkg/cron"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
	"github.com/leadwise/crm-backend-go/internal/pkg/jwt"
	"github.com/leadwise/crm-backend-go/internal/pkg/sse"
	"github.com/leadwise/crm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/leadwise/crm-backend-go/internal/service/attendance"
	leadService "github.com/leadwise/crm-backend-go/internal/service/lead"
	notificationService "github.com/leadwise/crm-backend-go/internal/service/notification"
	taskService "github.com/leadwise/crm-backend-go/internal/service/task"
	ticketService "github.com/leadwise/crm-backend-go/internal/service/ticket"
	userService "github.com/leadwise/crm-backend-go/internal/service/user"
	visibilityService "github.com/leadwise/crm-backend-go/internal/service/visibility"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	subordinateCache := cache.NewCache(redisClient)

	userRepo := postgresql.NewUserRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	leadRepo := postgresql.NewLeadRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	roleDir, userDir := visibilityService.NewDirectory(userRepo, roleRepo)
	engine := visibilityService.NewEngine(roleDir, userDir, subordinateCache)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	hub := sse.NewHub()
	notifier := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notifier.Stop()

	orgService := userService.NewService(db, userRepo, roleRepo, departmentRepo)
	leadSvc := leadService.NewService(leadRepo, engine, orgService, notifier)
	taskSvc := taskService.NewService(taskRepo, engine, orgService, notifier)
	ticketSvc := ticketService.NewService(ticketRepo, engine, orgService, notifier)
	attendanceSvc := attendanceService.NewService(attendanceRepo, engine, orgService, cfg.Office)

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(notificationRepo, ticketRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Org:          appHTTP.NewOrgHandler(orgService),
		Lead:         appHTTP.NewLeadHandler(leadSvc),
		Task:         appHTTP.NewTaskHandler(taskSvc),
		Ticket:       appHTTP.NewTicketHandler(ticketSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Notification: appHTTP.NewNotificationHandler(notifier, jwtService),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
