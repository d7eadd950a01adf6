package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sandvall/katalog-grid/pkg/grid"
	"github.com/sandvall/katalog-grid/pkg/tracking"
	"github.com/sandvall/katalog-grid/pkg/types"
)

var secretKey = []byte(os.Getenv("KATALOG_TOKEN_HASH"))
var adminApiKey = os.Getenv("KATALOG_API_KEY")

const tokenCookieName = "kg-admin"

func createToken(username, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"username": username,
			"role":     role,
			"exp":      time.Now().Add(time.Hour * 24).Unix(),
		})
	return token.SignedString(secretKey)
}

// Login exchanges the service api key for a signed admin cookie.
func (ws *WebServer) Login(w http.ResponseWriter, r *http.Request) {
	if adminApiKey == "" || r.Header.Get("Authorization") != adminApiKey {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	body := struct {
		Username string `json:"username"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" {
		body.Username = "admin"
	}
	token, err := createToken(body.Username, "admin")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   7 * 86400,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusOK)
}

func (ws *WebServer) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   tokenCookieName,
		Value:  "",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusOK)
}

func (ws *WebServer) User(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(tokenCookieName)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(token.Claims); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (ws *WebServer) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if adminApiKey == "" || auth != adminApiKey {
			cookie, err := r.Cookie(tokenCookieName)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
				return secretKey, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	}
}

// HandlePredefinedOrder serves the shared hierarchical order. Saves
// reconcile against the current grid values first so stale entries
// never persist, then fan out to the other replicas via the store.
func (ws *WebServer) HandlePredefinedOrder(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "POST":
		order := &types.PredefinedSortOrder{}
		if err := json.NewDecoder(r.Body).Decode(order); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		order = grid.ReconcilePredefined(order, ws.Grids)
		if ws.Order != nil {
			if err := ws.Order.SaveOrder(r.Context(), order); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		if ws.Db != nil {
			if err := ws.Db.SaveOrder(order); err != nil {
				log.Printf("Error saving order to disk: %v", err)
			}
		}
		tracking.OrderSaves.Inc()
		defaultHeaders(w, r, true, "0")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(order); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	case "DELETE":
		if ws.Order != nil {
			if err := ws.Order.ClearOrder(r.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	default:
		var order *types.PredefinedSortOrder
		if ws.Order != nil {
			order = ws.Order.GetOrder()
		}
		if order == nil {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		defaultHeaders(w, r, true, "0")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(order); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// ReconcileOrder re-syncs the saved order against the current values
// without changing any user-authored positions.
func (ws *WebServer) ReconcileOrder(w http.ResponseWriter, r *http.Request) {
	var order *types.PredefinedSortOrder
	if ws.Order != nil {
		order = ws.Order.GetOrder()
	}
	if order == nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	order = grid.ReconcilePredefined(order, ws.Grids)
	if err := ws.Order.SaveOrder(r.Context(), order); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(order); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleRules serves the saved custom sort rules of one grid instance.
// Rules arriving without an id get one minted here.
func (ws *WebServer) HandleRules(w http.ResponseWriter, r *http.Request) {
	if ws.Order == nil {
		http.Error(w, "order store not configured", http.StatusInternalServerError)
		return
	}
	gridId := r.PathValue("grid")
	switch r.Method {
	case "POST":
		rules := []types.CustomSortRule{}
		if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for i := range rules {
			if rules[i].Id == "" {
				rules[i].Id = uuid.NewString()
			}
		}
		if err := ws.Order.SaveRules(r.Context(), gridId, rules); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defaultHeaders(w, r, true, "0")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(rules); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	case "DELETE":
		if err := ws.Order.ClearRules(r.Context(), gridId); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		rules := ws.Order.GetRules(r.Context(), gridId)
		defaultHeaders(w, r, true, "0")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(rules); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// HandleGridConfig round-trips the per-grid UI state. Writes queue up
// in the save queue, reads come from the store.
func (ws *WebServer) HandleGridConfig(w http.ResponseWriter, r *http.Request) {
	gridId := r.PathValue("grid")
	if r.Method == "POST" {
		config := &types.GridConfig{}
		if err := json.NewDecoder(r.Body).Decode(config); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ws.queueConfigSave(gridId, config)
		w.WriteHeader(http.StatusOK)
		return
	}
	config, err := ws.loadGridConfig(r, gridId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(config); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ResetFilters clears the ephemeral filter state of a grid instance and
// keeps the custom rules, matching the UI reset button.
func (ws *WebServer) ResetFilters(w http.ResponseWriter, r *http.Request) {
	gridId := r.PathValue("grid")
	config, err := ws.loadGridConfig(r, gridId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	config.ResetFilters()
	ws.queueConfigSave(gridId, config)
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(config); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (ws *WebServer) loadGridConfig(r *http.Request, gridId string) (*types.GridConfig, error) {
	if ws.Order != nil {
		return ws.Order.LoadGridConfig(r.Context(), gridId)
	}
	if ws.Db != nil {
		return ws.Db.LoadGridConfig(gridId)
	}
	return &types.GridConfig{}, nil
}

func (ws *WebServer) queueConfigSave(gridId string, config *types.GridConfig) {
	if ws.ConfigSaves != nil {
		ws.ConfigSaves.Add(ConfigSave{GridId: gridId, Config: config})
		return
	}
	if ws.Db != nil {
		if err := ws.Db.SaveGridConfig(gridId, config); err != nil {
			log.Printf("Error saving grid config %s: %v", gridId, err)
		}
	}
}

// ClearAffected acknowledges a pending driver deletion cascade.
func (ws *WebServer) ClearAffected(w http.ResponseWriter, r *http.Request) {
	g, ok := ws.gridFromRequest(r)
	if !ok {
		http.Error(w, "unknown grid kind", http.StatusNotFound)
		return
	}
	g.ClearAffected()
	w.WriteHeader(http.StatusOK)
}

// Save writes a row snapshot of every grid to disk for warm restarts.
func (ws *WebServer) Save(w http.ResponseWriter, _ *http.Request) {
	if ws.Db == nil {
		http.Error(w, "storage not configured", http.StatusInternalServerError)
		return
	}
	for kind, g := range ws.Grids {
		rows := make([]*types.DataRow, 0, g.Len())
		for _, row := range g.Rows() {
			if dataRow, ok := row.(*types.DataRow); ok {
				rows = append(rows, dataRow)
			}
		}
		if err := ws.Db.SaveRows(kind, rows); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (ws *WebServer) AdminHandler() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		defaultHeaders(w, r, false, "0")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Println("Error writing health check response")
		}
	})

	srv.HandleFunc("/login", ws.Login)
	srv.HandleFunc("/logout", ws.Logout)
	srv.HandleFunc("/user", ws.User)

	srv.HandleFunc("/order", ws.AuthMiddleware(ws.HandlePredefinedOrder))
	srv.HandleFunc("POST /order/reconcile", ws.AuthMiddleware(ws.ReconcileOrder))
	srv.HandleFunc("/rules/{grid}", ws.AuthMiddleware(ws.HandleRules))
	srv.HandleFunc("/config/{grid}", ws.HandleGridConfig)
	srv.HandleFunc("POST /config/{grid}/reset", ws.ResetFilters)
	srv.HandleFunc("DELETE /grids/{kind}/affected", ws.AuthMiddleware(ws.ClearAffected))
	srv.HandleFunc("/save", ws.AuthMiddleware(ws.Save))

	return srv
}
