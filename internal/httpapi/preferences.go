package httpapi

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const themeKey = "tema"

// Temas aceitos; "system" segue a preferência do sistema operacional
var themes = []string{"light", "dark", "system"}

const defaultTheme = "system"

type themeRequest struct {
	Tema string `json:"tema" binding:"required"`
}

func registerPreferences(rg *gin.RouterGroup) {
	rg.GET("/preferencias/tema", getTheme)
	rg.PUT("/preferencias/tema", setTheme)
}

func getTheme(c *gin.Context) {
	theme, ok := sessions.Default(c).Get(themeKey).(string)
	if !ok || !slices.Contains(themes, theme) {
		theme = defaultTheme
	}
	c.JSON(http.StatusOK, gin.H{"tema": theme})
}

func setTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !slices.Contains(themes, req.Tema) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tema inválido", "temas": themes})
		return
	}

	session := sessions.Default(c)
	session.Set(themeKey, req.Tema)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível salvar a preferência"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tema": req.Tema})
}
