package webkit

import (
	"context"
	"testing"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/formview/internal/application/port"
)

// WebKit methods the view calls, pinned to their binding signatures.
var (
	_ port.FormView = (*View)(nil)

	_ func(*webkit.WebView, string, string)                                                  = (*webkit.WebView).LoadHtml
	_ func(*webkit.WebView, context.Context, string, string, string, gio.AsyncReadyCallback) = (*webkit.WebView).EvaluateJavascript
	_ func(*webkit.SecurityManager, string)                                                  = (*webkit.SecurityManager).RegisterURISchemeAsCorsEnabled
	_ func(*webkit.SecurityManager, string)                                                  = (*webkit.SecurityManager).RegisterURISchemeAsSecure
)

func TestAssetBaseURI(t *testing.T) {
	v := &View{host: "v7"}
	assert.Equal(t, "formview://v7/assets/", v.AssetBaseURI())
}
