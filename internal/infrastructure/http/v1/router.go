// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/core/events"
	"gescom/internal/core/numerator"
	"gescom/internal/domain/catalogs/counterparty"
	"gescom/internal/domain/catalogs/product"
	"gescom/internal/domain/documents"
	"gescom/internal/domain/documents/credit_note"
	"gescom/internal/domain/documents/delivery_receipt"
	"gescom/internal/domain/documents/purchase_order"
	"gescom/internal/domain/documents/reception_note"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/domain/documents/supplier_order"
	"gescom/internal/domain/ledger"
	"gescom/internal/infrastructure/http/v1/handlers"
	"gescom/internal/infrastructure/http/v1/middleware"
	"gescom/internal/infrastructure/storage/postgres"
	"gescom/internal/infrastructure/storage/postgres/catalog_repo"
	"gescom/internal/infrastructure/storage/postgres/document_repo"
	"gescom/internal/infrastructure/storage/postgres/ledger_repo"
	"gescom/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (used by health checks)
	Pool *postgres.Pool

	// TxManager coordinates transactions for all repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Numerator for document number generation
	Numerator numerator.Generator

	// Bus distributes change notifications to UI subscribers
	Bus *events.Bus
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID(cfg.Logger))
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	counterpartyRepo := catalog_repo.NewCounterpartyRepo(cfg.TxManager)
	movementRepo := ledger_repo.NewMovementRepo(cfg.TxManager)

	// --- Services ---
	ledgerService := ledger.NewService(movementRepo, productRepo)
	writer := documents.NewWriter(cfg.TxManager, cfg.Numerator, ledgerService, cfg.Bus)

	productService := product.NewService(productRepo, cfg.TxManager, cfg.Bus)
	counterpartyService := counterparty.NewService(counterpartyRepo, cfg.TxManager, cfg.Bus)

	saleService := sale.NewService(document_repo.NewSaleRepo(cfg.TxManager), writer)
	supplierOrderService := supplier_order.NewService(document_repo.NewSupplierOrderRepo(cfg.TxManager), writer)
	purchaseOrderService := purchase_order.NewService(document_repo.NewPurchaseOrderRepo(cfg.TxManager), writer)
	creditNoteService := credit_note.NewService(document_repo.NewCreditNoteRepo(cfg.TxManager), writer, saleService)
	receptionNoteService := reception_note.NewService(document_repo.NewReceptionNoteRepo(cfg.TxManager), writer)
	deliveryReceiptService := delivery_receipt.NewService(document_repo.NewDeliveryReceiptRepo(cfg.TxManager), writer, saleService)

	// --- Handlers ---
	base := handlers.NewBaseHandler()
	binder := handlers.NewDocumentBinder(counterpartyService, productService)

	api := router.Group("/api/v1")
	{
		catalogs := api.Group("/catalog")
		handlers.NewProductHandler(base, productService).
			RegisterRoutes(catalogs.Group("/products"))
		handlers.NewCounterpartyHandler(base, counterpartyService).
			RegisterRoutes(catalogs.Group("/counterparties"))

		docs := api.Group("/documents")
		handlers.NewSaleHandler(base, saleService, binder).
			RegisterRoutes(docs.Group("/sales"))
		handlers.NewSupplierOrderHandler(base, supplierOrderService, binder).
			RegisterRoutes(docs.Group("/supplier-orders"))
		handlers.NewPurchaseOrderHandler(base, purchaseOrderService, binder).
			RegisterRoutes(docs.Group("/purchase-orders"))
		handlers.NewCreditNoteHandler(base, creditNoteService, binder).
			RegisterRoutes(docs.Group("/credit-notes"))
		handlers.NewReceptionNoteHandler(base, receptionNoteService, binder).
			RegisterRoutes(docs.Group("/reception-notes"))
		handlers.NewDeliveryReceiptHandler(base, deliveryReceiptService, binder).
			RegisterRoutes(docs.Group("/delivery-receipts"))

		handlers.NewStockHandler(base, ledgerService).
			RegisterRoutes(api.Group("/stock"))
		handlers.NewEventsHandler(base, cfg.Bus).
			RegisterRoutes(api.Group("/events"))
	}

	return router
}
