package qrc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/jamedeus/qrgen/qrc/common"
	"github.com/jamedeus/qrgen/qrc/contact"
	"github.com/jamedeus/qrgen/qrc/link"
	"github.com/jamedeus/qrgen/qrc/wifi"
)

// TypeInfo is the info needed to fit into the generator
// Returns:
//   * QR type label used in requests
//   * User friendly description
//   * Func that builds the variant from a request body
type TypeInfo func() (string, string, common.FuncParseRequest)

// TypesInfo lists every supported QR code type
var TypesInfo []TypeInfo = []TypeInfo{contact.GetTypeInfo, wifi.GetTypeInfo, link.GetTypeInfo}

// UnsupportedType is the body returned for an unknown type field
const UnsupportedType = "Unsupported QR code type"

// Generator renders QR codes from request bodies
type Generator struct {
	Config  *common.Config
	Fonts   common.FontResolver
	parsers map[string]common.FuncParseRequest
}

// NewGenerator returns a generator for every type in TypesInfo
func NewGenerator(config *common.Config, fonts common.FontResolver) *Generator {
	parsers := make(map[string]common.FuncParseRequest, len(TypesInfo))
	for _, getTypeInfo := range TypesInfo {
		label, _, parse := getTypeInfo()
		parsers[label] = parse
	}
	return &Generator{Config: config, Fonts: fonts, parsers: parsers}
}

// ErrUnsupportedType is returned for a request whose type is not registered
var ErrUnsupportedType = errors.New(UnsupportedType)

// ErrBadRequest wraps request bodies that cannot be decoded
var ErrBadRequest = errors.New("bad request")

// Parse builds the variant named by the type field of body
func (g *Generator) Parse(body []byte) (common.QrVariant, error) {
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	parse, found := g.parsers[header.Type]
	if !found {
		return nil, ErrUnsupportedType
	}
	variant, err := parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return variant, nil
}

// Render renders variant with the generator's config and fonts
func (g *Generator) Render(variant common.QrVariant) (*common.Rendered, error) {
	return common.Render(variant, g.Config, g.Fonts)
}

type generateResponse struct {
	Caption   string `json:"caption"`
	NoCaption string `json:"no_caption"`
}

// GetServer returns the router and the address to listen on
func GetServer(debugMode bool, config *common.Config) (*gin.Engine, string) {
	if !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	if debugMode {
		pprof.Register(router)
	}

	generator := NewGenerator(config, common.NewFontResolver(config))

	router.LoadHTMLGlob(filepath.Join(config.TemplatesDir, "*.html"))

	// Index page
	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Title":   config.AppName,
			"Version": config.Version,
			"Types":   typeDescriptions(),
		})
	})

	router.POST("/generate", func(c *gin.Context) {
		sendResponse(generator, c)
	})

	// Run on port 8080 unless PORT variable is set
	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}
	return router, fmt.Sprintf(":%s", port)
}

type typeDescription struct {
	Label string
	Desc  string
}

func typeDescriptions() []typeDescription {
	descs := make([]typeDescription, 0, len(TypesInfo))
	for _, getTypeInfo := range TypesInfo {
		label, desc, _ := getTypeInfo()
		descs = append(descs, typeDescription{label, desc})
	}
	return descs
}

func sendResponse(generator *Generator, c *gin.Context) {
	log := common.NewLog()
	defer func() {
		if log.HasErrors() {
			log.Dbg("%s %s failed: %s", c.Request.Method, c.Request.URL.Path, log.Summary())
		}
	}()

	body, err := c.GetRawData()
	if err != nil {
		log.Err("Error reading request body - %s", err)
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	variant, err := generator.Parse(body)
	if errors.Is(err, ErrUnsupportedType) {
		log.Err("%s", err)
		c.String(http.StatusBadRequest, UnsupportedType)
		return
	} else if err != nil {
		log.Err("%s", err)
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if generator.Config.DebugOutput {
		log.Dbg(common.YamlObjectAsString(variant, "Generate"))
	}

	rendered, err := generator.Render(variant)
	if err != nil {
		log.Err("Error rendering %s - %s", variant.Filename(), err)
		status := http.StatusInternalServerError
		if errors.Is(err, common.ErrFontTooSmall) || errors.Is(err, common.ErrPayloadTooLong) {
			status = http.StatusUnprocessableEntity
		}
		c.String(status, err.Error())
		return
	}

	var resp generateResponse
	if resp.Caption, err = common.EncodePngBase64(rendered.Composite); err == nil {
		resp.NoCaption, err = common.EncodePngBase64(rendered.QrImage)
	}
	if err != nil {
		log.Err("%s", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	log.Msg("Generated %s", rendered.Filename)
	c.JSON(http.StatusOK, resp)
}
