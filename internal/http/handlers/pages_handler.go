package handlers

import (
	"errors"
	htmltemplate "html/template"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"immolist/internal/domain"
	"immolist/internal/listing"
	applog "immolist/internal/log"
	"immolist/internal/services"
	"immolist/internal/validate"
)

// PagesHandler serves the server-rendered UI. The listing page is driven
// entirely by its query string: filters and page number are parsed from the
// URL, the filtered page is computed server-side, and every link carries
// the encoded state back out so a shared URL reproduces the same view.
type PagesHandler struct {
	Props *services.PropertyService
}

type pageLink struct {
	N       int
	Href    string
	Current bool
}

type filterOption struct {
	Value   string
	Checked bool
}

func (h *PagesHandler) List(c *fiber.Ctx) error {
	st := listing.ParseQuery(pageQuery(c))
	all := h.Props.GetAll()
	filtered := st.Filters.Apply(all)
	paged := st.Paginate(filtered)

	total := listing.TotalPages(len(filtered))
	links := make([]pageLink, 0, total)
	for n := 1; n <= total; n++ {
		links = append(links, pageLink{N: n, Href: "/?" + st.WithPage(n).Encode(), Current: n == st.Page})
	}

	return render(c, "properties", fiber.Map{
		"Properties":  paged,
		"Count":       len(filtered),
		"Query":       linkQuery(st.Encode()),
		"Pages":       links,
		"ShowPager":   total > 1,
		"CityValue":   strings.Join(st.Filters.Cities, ", "),
		"MinPrice":    numberValue(st.Filters.MinPrice),
		"MaxPrice":    numberValue(st.Filters.MaxPrice),
		"MinSurface":  numberValue(st.Filters.MinSurface),
		"MaxSurface":  numberValue(st.Filters.MaxSurface),
		"Categories":  categoryOptions(st.Filters.Categories),
		"Statuses":    statusOptions(st.Filters.Statuses),
		"FacetCities": facetCities(all),
		"Filtered":    !st.Filters.IsZero(),
	})
}

func (h *PagesHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	p, found := h.Props.GetByID(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	return render(c, "property", fiber.Map{"P": p, "Query": linkQuery(rawQuery(c))})
}

func (h *PagesHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "property_form", fiber.Map{
		"Form":   formModel{Type: string(domain.TypeSale), Category: string(domain.CategoryApartment)},
		"IsEdit": false,
		"Action": "/property/new?" + rawQuery(c),
		"Query":  linkQuery(rawQuery(c)),
	})
}

func (h *PagesHandler) Create(c *fiber.Ctx) error {
	form, errMsg := parsePropertyForm(c)
	if errMsg != "" {
		return c.Status(fiber.StatusBadRequest).Render("property_form", formData(c, form, false, errMsg))
	}
	in := domain.CreateProperty{
		Title:    form.title(),
		City:     form.city(),
		Price:    form.price(),
		Surface:  form.surface(),
		Type:     domain.Type(form.Type),
		Category: domain.Category(form.Category),
		Images:   form.images(),
	}
	p, err := h.Props.Create(in)
	if err != nil {
		return h.formError(c, form, false, err)
	}
	applog.Audit(c, "property.create", map[string]any{"id": p.ID, "title": p.Title})
	return c.Redirect("/?"+rawQuery(c), fiber.StatusSeeOther)
}

func (h *PagesHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	p, found := h.Props.GetByID(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	form := formFromProperty(p)
	return render(c, "property_form", fiber.Map{
		"Form":   form,
		"IsEdit": true,
		"Action": "/property/" + p.ID + "/edit?" + rawQuery(c),
		"Query":  linkQuery(rawQuery(c)),
	})
}

func (h *PagesHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	form, errMsg := parsePropertyForm(c)
	if errMsg != "" {
		return c.Status(fiber.StatusBadRequest).Render("property_form", formData(c, form, true, errMsg))
	}
	title := form.title()
	city := form.city()
	price := form.price()
	surface := form.surface()
	typ := domain.Type(form.Type)
	cat := domain.Category(form.Category)
	status := domain.Status(form.Status)
	images := form.images()
	in := domain.UpdateProperty{
		Title:    &title,
		City:     &city,
		Price:    &price,
		Surface:  &surface,
		Type:     &typ,
		Category: &cat,
		Images:   &images,
	}
	if status != "" {
		in.Status = &status
	}
	_, found, err := h.Props.Update(id, in)
	if err != nil {
		return h.formError(c, form, true, err)
	}
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	applog.Audit(c, "property.update", map[string]any{"id": id})
	return c.Redirect("/?"+rawQuery(c), fiber.StatusSeeOther)
}

// ConfirmDelete interposes an explicit confirmation step; the delete
// itself only happens on the confirmed POST.
func (h *PagesHandler) ConfirmDelete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	p, found := h.Props.GetByID(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	return render(c, "property_confirm_delete", fiber.Map{"P": p, "Query": linkQuery(rawQuery(c))})
}

func (h *PagesHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	removed, err := h.Props.Delete(id)
	if err != nil {
		applog.Error(c, "property.delete", err, map[string]any{"id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not delete the property. Please retry."})
	}
	if !removed {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This property does not exist"})
	}
	applog.Audit(c, "property.delete", map[string]any{"id": id})
	return c.Redirect("/?"+rawQuery(c), fiber.StatusSeeOther)
}

func (h *PagesHandler) formError(c *fiber.Ctx, form formModel, isEdit bool, err error) error {
	var derr *services.DuplicateTitleError
	if errors.As(err, &derr) {
		return c.Status(fiber.StatusConflict).Render("property_form", formData(c, form, isEdit, derr.Error()))
	}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).Render("property_form", formData(c, form, isEdit, verr.Error()))
	}
	applog.Error(c, "property.save", err, nil)
	return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not save the property. Please retry."})
}

// formModel mirrors the HTML form fields as strings so a failed submit can
// be re-rendered exactly as entered.
type formModel struct {
	Title    string
	City     string
	Price    string
	Surface  string
	Type     string
	Category string
	Status   string
	Images   []string
}

func (f formModel) title() string    { t, _ := validate.Title(f.Title); return t }
func (f formModel) city() string     { v, _ := validate.City(f.City); return v }
func (f formModel) price() float64   { n, _ := validate.PositiveNumber(f.Price); return n }
func (f formModel) surface() float64 { n, _ := validate.PositiveNumber(f.Surface); return n }

func (f formModel) images() []string {
	out := []string{}
	for _, img := range f.Images {
		if v, ok := validate.ImageRef(img); ok {
			out = append(out, v)
		}
	}
	return out
}

type imageSlot struct {
	Name  string
	Value string
}

// ImageSlots always yields MaxImages entries so the template can render a
// fixed set of inputs.
func (f formModel) ImageSlots() []imageSlot {
	slots := make([]imageSlot, domain.MaxImages)
	for i := range slots {
		slots[i].Name = "image" + strconv.Itoa(i+1)
		if i < len(f.Images) {
			slots[i].Value = f.Images[i]
		}
	}
	return slots
}

func formFromProperty(p domain.Property) formModel {
	return formModel{
		Title:    p.Title,
		City:     p.City,
		Price:    strconv.FormatFloat(p.Price, 'f', -1, 64),
		Surface:  strconv.FormatFloat(p.Surface, 'f', -1, 64),
		Type:     string(p.Type),
		Category: string(p.Category),
		Status:   string(p.Status),
		Images:   p.Images,
	}
}

// parsePropertyForm validates the posted fields client-side of the
// service, so bad input never reaches a store write.
func parsePropertyForm(c *fiber.Ctx) (formModel, string) {
	form := formModel{
		Title:    strings.TrimSpace(c.FormValue("title")),
		City:     strings.TrimSpace(c.FormValue("city")),
		Price:    strings.TrimSpace(c.FormValue("price")),
		Surface:  strings.TrimSpace(c.FormValue("surface")),
		Type:     strings.TrimSpace(c.FormValue("type")),
		Category: strings.TrimSpace(c.FormValue("category")),
		Status:   strings.TrimSpace(c.FormValue("status")),
	}
	for i := 1; i <= domain.MaxImages; i++ {
		if v := strings.TrimSpace(c.FormValue("image" + strconv.Itoa(i))); v != "" {
			form.Images = append(form.Images, v)
		}
	}

	if _, ok := validate.Title(form.Title); !ok {
		return form, "Enter a title (at most 120 characters)"
	}
	if _, ok := validate.City(form.City); !ok {
		return form, "Enter a city"
	}
	if _, ok := validate.PositiveNumber(form.Price); !ok {
		return form, "Price must be a positive number"
	}
	if _, ok := validate.PositiveNumber(form.Surface); !ok {
		return form, "Surface must be a positive number"
	}
	if !domain.ValidType(domain.Type(form.Type)) {
		return form, "Choose sale or rent"
	}
	if !domain.ValidCategory(domain.Category(form.Category)) {
		return form, "Choose a valid category"
	}
	if form.Status != "" && !domain.ValidStatus(domain.Status(form.Status)) {
		return form, "Choose a valid status"
	}
	for _, img := range form.Images {
		if _, ok := validate.ImageRef(img); !ok {
			return form, "Image references must be uploaded files or http(s) URLs"
		}
	}
	return form, ""
}

func formData(c *fiber.Ctx, form formModel, isEdit bool, errMsg string) fiber.Map {
	action := "/property/new?" + rawQuery(c)
	if isEdit {
		action = "/property/" + c.Params("id") + "/edit?" + rawQuery(c)
	}
	data := fiber.Map{
		"Form":   form,
		"IsEdit": isEdit,
		"Action": action,
		"Query":  linkQuery(rawQuery(c)),
		"Err":    errMsg,
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return data
}

func pageQuery(c *fiber.Ctx) url.Values {
	q, err := url.ParseQuery(rawQuery(c))
	if err != nil {
		return url.Values{}
	}
	return q
}

func rawQuery(c *fiber.Ctx) string {
	return string(c.Request().URI().QueryString())
}

// linkQuery marks an already-encoded query string as a safe URL fragment
// so templates keep its & and = intact instead of percent-escaping them.
func linkQuery(q string) htmltemplate.URL {
	return htmltemplate.URL(q)
}

func numberValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func categoryOptions(selected []domain.Category) []filterOption {
	opts := make([]filterOption, 0, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		checked := false
		for _, s := range selected {
			if s == cat {
				checked = true
			}
		}
		opts = append(opts, filterOption{Value: string(cat), Checked: checked})
	}
	return opts
}

func statusOptions(selected []domain.Status) []filterOption {
	opts := make([]filterOption, 0, len(domain.Statuses()))
	for _, st := range domain.Statuses() {
		checked := false
		for _, s := range selected {
			if s == st {
				checked = true
			}
		}
		opts = append(opts, filterOption{Value: string(st), Checked: checked})
	}
	return opts
}

// facetCities lists the distinct cities present in the catalog, sorted,
// for the filter datalist.
func facetCities(props []domain.Property) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range props {
		if !seen[p.City] {
			seen[p.City] = true
			out = append(out, p.City)
		}
	}
	sort.Strings(out)
	return out
}
