package router

import (
	"github.com/gin-gonic/gin"

	markethandler "stock_tracker/internal/feature/market/transport/handler"
	portfoliohandler "stock_tracker/internal/feature/portfolio/transport/handler"
	watchlisthandler "stock_tracker/internal/feature/watchlist/transport/handler"
)

// NewRouter mounts every endpoint. health serves /healthz.
func NewRouter(health gin.HandlerFunc, market *markethandler.MarketHandler,
	portfolio *portfoliohandler.PortfolioHandler, watchlist *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	// market data (cached for 30 minutes)
	r.GET("/quotes/:symbol", market.GetQuote)
	r.GET("/history/:symbol", market.GetHistory)
	r.GET("/search", market.Search)

	p := r.Group("/portfolio")
	{
		p.GET("", portfolio.List)
		p.POST("", portfolio.Add)
		p.GET("/total", portfolio.Total)
		p.PUT("/:symbol", portfolio.UpdateShares)
		p.DELETE("/:symbol", portfolio.Remove)
	}

	w := r.Group("/watchlist")
	{
		w.GET("", watchlist.List)
		w.POST("", watchlist.Add)
		w.GET("/:symbol", watchlist.Contains)
		w.DELETE("/:symbol", watchlist.Remove)
	}

	return r
}
