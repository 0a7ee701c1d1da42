package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/openfaktura/backend/internal/article"
	articledomain "github.com/openfaktura/backend/internal/article/domain"
	"github.com/openfaktura/backend/internal/company"
	companydomain "github.com/openfaktura/backend/internal/company/domain"
	"github.com/openfaktura/backend/internal/config"
	"github.com/openfaktura/backend/internal/invoice"
	invoicedomain "github.com/openfaktura/backend/internal/invoice/domain"
	"github.com/openfaktura/backend/internal/observability"
	obslogger "github.com/openfaktura/backend/internal/observability/logger"
	obstracing "github.com/openfaktura/backend/internal/observability/tracing"
	"github.com/openfaktura/backend/internal/providers/pdf"
	"github.com/openfaktura/backend/internal/tenant"
	tenantdomain "github.com/openfaktura/backend/internal/tenant/domain"
	"github.com/openfaktura/backend/internal/user"
	userdomain "github.com/openfaktura/backend/internal/user/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	pdf.Module,
	tenant.Module,
	user.Module,
	company.Module,
	article.Module,
	invoice.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(TenantContextMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	tenantSvc  tenantdomain.Service
	userSvc    userdomain.Service
	companySvc companydomain.Service
	articleSvc articledomain.Service
	invoiceSvc invoicedomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	TenantSvc  tenantdomain.Service
	UserSvc    userdomain.Service
	CompanySvc companydomain.Service
	ArticleSvc articledomain.Service
	InvoiceSvc invoicedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		tenantSvc:  p.TenantSvc,
		userSvc:    p.UserSvc,
		companySvc: p.CompanySvc,
		articleSvc: p.ArticleSvc,
		invoiceSvc: p.InvoiceSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	r := s.engine

	r.POST("/tenants", s.CreateTenant)
	r.GET("/tenants", s.ListTenants)
	r.GET("/tenants/:id", s.GetTenant)
	r.PATCH("/tenants/:id", s.UpdateTenant)
	r.DELETE("/tenants/:id", s.DeleteTenant)

	r.POST("/users", s.CreateUser)
	r.GET("/users", s.ListUsers)
	r.GET("/users/:id", s.GetUser)
	r.PATCH("/users/:id", s.UpdateUser)
	r.DELETE("/users/:id", s.DeleteUser)

	r.POST("/companies", s.CreateCompany)
	r.GET("/companies", s.ListCompanies)
	r.GET("/companies/:id", s.GetCompany)
	r.PATCH("/companies/:id", s.UpdateCompany)
	r.DELETE("/companies/:id", s.DeleteCompany)

	r.POST("/articles", s.CreateArticle)
	r.GET("/articles", s.ListArticles)
	r.GET("/articles/:id", s.GetArticle)
	r.PATCH("/articles/:id", s.UpdateArticle)
	r.DELETE("/articles/:id", s.DeleteArticle)

	r.POST("/invoices", s.CreateInvoice)
	r.GET("/invoices", s.ListInvoices)
	r.GET("/invoices/company/:companyId", s.ListInvoicesByCompany)
	r.GET("/invoices/:id", s.GetInvoice)
	r.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
}
