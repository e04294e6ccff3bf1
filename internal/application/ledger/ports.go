package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el ledger: cambio de cantidad y asiento
// en el journal confirman juntos o ninguno. Si la transacción no puede confirmarse por
// un escritor concurrente, Run devuelve domain.ErrTxConflict (reintentable).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// StockReportGenerator renderiza el estado actual de stock como documento (PDF).
// La implementación vive en infraestructura; aquí solo el puerto.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, generatedAt time.Time, rows []*entity.StockWithDetails) ([]byte, error)
}
