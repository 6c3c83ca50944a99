package simulator

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ranksim/simulator/catalog"
)

const exportFileName = "ranking_simulation_output.csv"

// RegisterRoutes wires the simulator's API onto a gin engine.
func RegisterRoutes(g *gin.Engine, sim *Simulator, l *slog.Logger) {
	api := g.Group("/api")
	api.GET("/search-terms", handleSearchTerms(sim, l))
	api.GET("/filters", handleFilters(sim, l))
	api.POST("/simulate", handleSimulate(sim, l, respondJSON))
	api.POST("/simulate/csv", handleSimulate(sim, l, respondCSV))
}

func handleSearchTerms(sim *Simulator, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, err := sim.source.Table()
		if err != nil {
			l.Error("Failed to load catalog", "path", c.Request.URL.Path, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error loading catalog: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"search_terms": distinctOrEmpty(table.Distinct(catalog.ColSearchTerm))})
	}
}

// handleFilters lists the brand and category options, narrowed to one
// search term when the query parameter is present.
func handleFilters(sim *Simulator, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, err := sim.source.Table()
		if err != nil {
			l.Error("Failed to load catalog", "path", c.Request.URL.Path, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error loading catalog: " + err.Error()})
			return
		}

		if term := c.Query("search_term"); term != "" {
			table = catalog.Filter{SearchTerm: term}.Apply(table)
		}

		c.JSON(http.StatusOK, gin.H{
			"brands":     distinctOrEmpty(table.Distinct(catalog.ColBrand)),
			"categories": distinctOrEmpty(table.Distinct(catalog.ColCategory)),
		})
	}
}

type responder func(c *gin.Context, result *Result)

func handleSimulate(sim *Simulator, l *slog.Logger, respond responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    CodeInvalidRequest,
				"message": "Invalid request body: " + err.Error(),
			})
			return
		}

		result, err := sim.Run(req)
		if err != nil {
			var simErr *SimulationError
			if errors.As(err, &simErr) {
				l.Warn("Simulation rejected",
					"search_term", req.SearchTerm,
					"code", string(simErr.Code),
					"error", simErr.Error())
				c.JSON(simErr.Status(), simErr)
				return
			}
			l.Error("Simulation failed",
				"search_term", req.SearchTerm,
				"error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error running simulation: " + err.Error()})
			return
		}

		respond(c, result)
	}
}

func respondJSON(c *gin.Context, result *Result) {
	c.JSON(http.StatusOK, result.JSON().Data())
}

func respondCSV(c *gin.Context, result *Result) {
	data, err := result.CSV()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating CSV: " + err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func distinctOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
