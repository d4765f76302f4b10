package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tohally/academy-web/internal/flash"
)

// NewsItem is a hardcoded news entry for the public pages. The academy has
// no CMS; the editorial content ships with the site.
type NewsItem struct {
	Title   string
	Content string
	Image   string
	Date    string
}

var featuredNews = []NewsItem{
	{
		Title:   "¡Goleada Histórica en el Torneo Regional!",
		Content: "Nuestra categoría sub-15 demostró un dominio absoluto en la final. ¡Campeones!",
		Image:   "noticia1.jpg",
		Date:    "28/SEP",
	},
	{
		Title:   "Taller de Nutrición y Rendimiento Físico",
		Content: "El Dr. Méndez impartió una charla clave sobre la dieta del futbolista de alto nivel.",
		Image:   "noticia2.jpg",
		Date:    "20/SEP",
	},
	{
		Title:   "Entrenador Gutiérrez Viaja a Seminario UEFA",
		Content: "Actualizando metodologías. El staff se mantiene a la vanguardia.",
		Image:   "noticia3.jpg",
		Date:    "15/SEP",
	},
}

var allNews = []NewsItem{
	{
		Title:   "¡Goleada Histórica en el Torneo Regional!",
		Content: "Nuestra categoría sub-15 demostró un dominio absoluto en la final. El esfuerzo y la disciplina dieron frutos.",
		Image:   "noticia1.jpg",
		Date:    "28 de Septiembre, 2025",
	},
	{
		Title:   "Taller de Nutrición y Rendimiento Físico",
		Content: "El Dr. Méndez impartió una charla clave sobre la dieta del futbolista de alto nivel. Se cubrieron hidratación, suplementos esenciales y planificación de comidas.",
		Image:   "noticia2.jpg",
		Date:    "20 de Septiembre, 2025",
	},
	{
		Title:   "Entrenador Gutiérrez Viaja a Seminario UEFA",
		Content: "Actualizando metodologías. El staff se mantiene a la vanguardia con las últimas técnicas de formación y entrenamiento de élite en Europa.",
		Image:   "noticia3.jpg",
		Date:    "15 de Septiembre, 2025",
	},
	{
		Title:   "Próximo Partido Amistoso: TOHALLY vs. Academia XYZ",
		Content: "Invitamos a todos los padres a asistir al encuentro amistoso de este sábado a las 10:00 am. ¡Apoyemos a nuestros jóvenes talentos!",
		Image:   "noticia4.jpg",
		Date:    "10 de Septiembre, 2025",
	},
}

// PagesHandler serves the public informational pages.
type PagesHandler struct {
	flashes flash.Store
}

// NewPagesHandler constructs handler.
func NewPagesHandler(flashes flash.Store) *PagesHandler {
	return &PagesHandler{flashes: flashes}
}

// Home handles GET /.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	return render(c, h.flashes, "index", fiber.Map{"Noticias": featuredNews})
}

// About handles GET /nosotros.
func (h *PagesHandler) About(c *fiber.Ctx) error {
	return render(c, h.flashes, "nosotros", fiber.Map{})
}

// Services handles GET /servicios.
func (h *PagesHandler) Services(c *fiber.Ctx) error {
	return render(c, h.flashes, "servicios", fiber.Map{})
}

// News handles GET /noticias.
func (h *PagesHandler) News(c *fiber.Ctx) error {
	return render(c, h.flashes, "noticias", fiber.Map{"Noticias": allNews})
}

// Gallery handles GET /galeria.
func (h *PagesHandler) Gallery(c *fiber.Ctx) error {
	return render(c, h.flashes, "galeria", fiber.Map{})
}
