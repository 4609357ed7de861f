package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/invtrack/inventory-manager/internal/entity"
	"github.com/jmoiron/sqlx"
)

type (
	Products interface {
		// GetProducts returns every product with its stock projection.
		GetProducts(ctx context.Context) ([]entity.Product, error)
		// GetProductById returns a product by id or gerr.ErrNotFound.
		GetProductById(ctx context.Context, id int) (*entity.Product, error)
		// SearchProducts matches the term against name and description.
		SearchProducts(ctx context.Context, term string) ([]entity.Product, error)
		AddProduct(ctx context.Context, prd *entity.ProductInsert) (*entity.Product, error)
		UpdateProduct(ctx context.Context, id int, upd *entity.ProductUpdate) (*entity.Product, error)
		DeleteProductById(ctx context.Context, id int) error
	}

	Inventory interface {
		GetInventory(ctx context.Context) ([]entity.InventoryItem, error)
		// GetLowStock returns items below the low-stock threshold,
		// emptiest first.
		GetLowStock(ctx context.Context) ([]entity.InventoryItem, error)
		GetInventoryByProduct(ctx context.Context, productId int) (*entity.InventoryItem, error)
		// SetQuantity upserts the single inventory row of a product.
		SetQuantity(ctx context.Context, productId int, quantity int) (*entity.InventoryItem, error)
	}

	Customers interface {
		GetCustomers(ctx context.Context) ([]entity.Customer, error)
		GetCustomerById(ctx context.Context, id int) (*entity.Customer, error)
		GetCustomerOrders(ctx context.Context, id int) ([]entity.CustomerOrderLine, error)
		// GetVIPCustomers returns customers with lifetime spend above 1000.
		GetVIPCustomers(ctx context.Context) ([]entity.Customer, error)
		SearchCustomers(ctx context.Context, term string) ([]entity.Customer, error)
		AddCustomer(ctx context.Context, ins *entity.AccountInsert) (*entity.Customer, error)
		UpdateCustomer(ctx context.Context, id int, upd *entity.AccountUpdate) (*entity.Customer, error)
		DeleteCustomerById(ctx context.Context, id int) error
	}

	Suppliers interface {
		GetSuppliers(ctx context.Context) ([]entity.Supplier, error)
		GetSupplierById(ctx context.Context, id int) (*entity.Supplier, error)
		// GetSupplierPerformance ranks suppliers shipping faster than the
		// fleet average; unshipped orders are excluded from the averages.
		GetSupplierPerformance(ctx context.Context) ([]entity.SupplierPerformance, error)
		SearchSuppliers(ctx context.Context, term string) ([]entity.Supplier, error)
		AddSupplier(ctx context.Context, ins *entity.AccountInsert) (*entity.Supplier, error)
		UpdateSupplier(ctx context.Context, id int, upd *entity.AccountUpdate) (*entity.Supplier, error)
		DeleteSupplierById(ctx context.Context, id int) error
	}

	Orders interface {
		GetOrders(ctx context.Context, f *entity.OrderFilter) ([]entity.Order, error)
		GetOrderSummary(ctx context.Context) ([]entity.OrderSummary, error)
		GetOrderStatusList(ctx context.Context) ([]entity.Order, error)
		GetOrderById(ctx context.Context, id int) (*entity.Order, error)
		GetOrderItems(ctx context.Context, orderId int) ([]entity.OrderItem, error)
		// CreateOrder inserts the header, the customer association and all
		// lines in one transaction.
		CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.Order, error)
		UpdateOrder(ctx context.Context, id int, upd *entity.OrderUpdate) (*entity.Order, error)
		// DeleteOrder fails with gerr.ErrOrderShipped when a shipment
		// references the order.
		DeleteOrder(ctx context.Context, id int) error
	}

	Shipments interface {
		GetShipments(ctx context.Context) ([]entity.Shipment, error)
		GetLateShipments(ctx context.Context) ([]entity.LateShipment, error)
		GetShipmentById(ctx context.Context, id int) (*entity.Shipment, error)
		CreateShipment(ctx context.Context, shipmentNew *entity.ShipmentNew) (*entity.Shipment, error)
		UpdateShipment(ctx context.Context, id int, upd *entity.ShipmentUpdate) (*entity.Shipment, error)
		DeleteShipment(ctx context.Context, id int) error
	}

	Payments interface {
		GetPayments(ctx context.Context, f *entity.PaymentFilter) ([]entity.Payment, error)
		GetPaymentAnalysis(ctx context.Context) ([]entity.PaymentBucket, error)
		GetPaymentById(ctx context.Context, id int) (*entity.Payment, error)
		AddPayment(ctx context.Context, ins *entity.PaymentInsert) (*entity.Payment, error)
	}

	Analytics interface {
		GetSalesByPeriod(ctx context.Context, f *entity.SalesFilter) ([]entity.SalesPeriod, error)
		GetProductRollup(ctx context.Context) ([]entity.ProductRollup, error)
		GetCustomerRollup(ctx context.Context) ([]entity.CustomerRollup, error)
		GetSupplierRollup(ctx context.Context) ([]entity.SupplierRollup, error)
		GetMonthlyTrend(ctx context.Context) ([]entity.MonthlyTrend, error)
	}

	Dashboard interface {
		GetOverview(ctx context.Context) (*entity.Overview, error)
		GetMonthlyMetrics(ctx context.Context) ([]entity.MonthlyMetric, error)
		GetTopProducts(ctx context.Context) ([]entity.TopProduct, error)
		GetTopCustomers(ctx context.Context) ([]entity.TopCustomer, error)
		GetSummary(ctx context.Context) (*entity.DashboardSummary, error)
	}

	Users interface {
		GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
		AddUser(ctx context.Context, username, contactInfo, role, pwHash string) error
		DeleteUser(ctx context.Context, username string) error
	}

	Repository interface {
		Products() Products
		Inventory() Inventory
		Customers() Customers
		Suppliers() Suppliers
		Orders() Orders
		Shipments() Shipments
		Payments() Payments
		Analytics() Analytics
		Dashboard() Dashboard
		Users() Users
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Ping(ctx context.Context) error
		Close()
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents the store-interaction interface. Parameters are
	// always positionally bound by the query helpers, never interpolated.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
