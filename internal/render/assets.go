package render

import "html/template"

// pageTemplate is the outer chrome shared by every view.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} — {{.SiteTitle}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body{{if .LiveReload}} data-livereload="1"{{end}}>
  <header class="site-header">
    <a class="site-title" href="/">{{.SiteTitle}}</a>
    <nav class="site-nav">
      <a href="/">Home</a>
      <a href="/posts">Posts</a>
    </nav>
  </header>
  <main class="content">
{{.Content}}
  </main>
  <footer class="site-footer">
    {{if .Author}}<span>{{.Author}}</span>{{end}}
  </footer>
  <script src="/static/site.js"></script>
</body>
</html>`

// StyleCSS returns the site stylesheet served at /static/style.css.
func StyleCSS() []byte { return []byte(cssContent) }

// SiteJS returns the behavior script served at /static/site.js.
func SiteJS() []byte { return []byte(jsContent) }

// PageHTML is exported for tests that want to sanity-check the chrome.
func PageHTML() *template.Template {
	t, _ := template.New("page").Parse(pageTemplate)
	return t
}

const cssContent = `:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-hover: #1c7ed6;
  --content-max-width: 960px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.12);
}

*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

html { font-size: 16px; scroll-behavior: smooth; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  min-height: 100vh;
  display: flex;
  flex-direction: column;
}

.site-header {
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: 1rem 2rem;
  border-bottom: 1px solid var(--border);
}
.site-title { font-weight: 700; font-size: 1.2rem; color: var(--text); text-decoration: none; }
.site-nav a { margin-left: 1.25rem; color: var(--text-muted); text-decoration: none; }
.site-nav a:hover { color: var(--accent); }

.content {
  width: 100%;
  max-width: var(--content-max-width);
  margin: 0 auto;
  padding: 2rem;
  flex: 1;
}

.site-footer {
  padding: 1.5rem 2rem;
  border-top: 1px solid var(--border);
  color: var(--text-muted);
  font-size: 0.875rem;
}

.about h1 { margin-bottom: 0.25rem; }
.tagline { color: var(--text-muted); margin-bottom: 1rem; }

.filter-bar {
  display: flex;
  flex-wrap: wrap;
  gap: 0.75rem;
  align-items: center;
  margin: 1.25rem 0;
}
.filter-bar input[type="search"] {
  flex: 1 1 200px;
  padding: 0.5rem 0.75rem;
  border: 1px solid var(--border);
  border-radius: 6px;
}
.filter-bar select, .tag-select-toggle, .view-toggle button {
  padding: 0.5rem 0.75rem;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--bg);
  cursor: pointer;
}
.tag-select { position: relative; }
.tag-select-menu {
  position: absolute;
  top: calc(100% + 4px);
  left: 0;
  min-width: 180px;
  max-height: 260px;
  overflow-y: auto;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 6px;
  box-shadow: var(--shadow-lg);
  padding: 0.5rem;
  z-index: 20;
}
.tag-select-menu label { display: block; padding: 0.2rem 0.3rem; cursor: pointer; }
.view-toggle button.active { background: var(--accent); color: #fff; border-color: var(--accent); }
.filter-clear { color: var(--text-muted); }
.result-count { color: var(--text-muted); margin-left: auto; }

.cards.grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(260px, 1fr));
  gap: 1.25rem;
}
.cards.list { display: flex; flex-direction: column; gap: 1rem; }
.card {
  border: 1px solid var(--border);
  border-radius: 8px;
  padding: 1rem;
  box-shadow: var(--shadow);
}
.card.pinned { border-color: var(--accent); }
.card-image img { width: 100%; border-radius: 6px; display: block; }
.card time { color: var(--text-muted); font-size: 0.85rem; }
.card-tags, .post-tags, .work-tech { list-style: none; display: flex; flex-wrap: wrap; gap: 0.4rem; margin-top: 0.5rem; }
.card-tags a, .post-tags a {
  background: var(--bg-secondary);
  border-radius: 4px;
  padding: 0.1rem 0.5rem;
  font-size: 0.8rem;
  color: var(--text-muted);
  text-decoration: none;
}
.no-results { color: var(--text-muted); padding: 2rem 0; }

.post-banner { width: 100%; max-height: 380px; object-fit: cover; border-radius: 8px; margin-bottom: 1.5rem; }
.post-detail header { margin-bottom: 1.5rem; }
.post-content { margin-bottom: 2rem; }
.post-content h2, .post-content h3 { margin: 1.5rem 0 0.5rem; }
.post-content p { margin-bottom: 1rem; }
.post-content pre { background: var(--bg-secondary); padding: 1rem; border-radius: 6px; overflow-x: auto; margin-bottom: 1rem; }
.post-content blockquote { border-left: 3px solid var(--accent); padding-left: 1rem; color: var(--text-muted); margin-bottom: 1rem; }
.two-column { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5rem; }
.callout { background: var(--bg-secondary); border-left: 3px solid var(--accent); padding: 0.75rem 1rem; border-radius: 0 6px 6px 0; margin-bottom: 1rem; }
.callout-title { display: block; margin-bottom: 0.25rem; }
.content-image img, .content-video video { max-width: 100%; border-radius: 6px; }
figcaption { color: var(--text-muted); font-size: 0.85rem; margin-top: 0.3rem; }

.gallery-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 1rem; }
.gallery-item img { width: 100%; border-radius: 6px; display: block; }
.gallery-item img[data-viewer-index] { cursor: zoom-in; }
.gallery-view-all { margin-top: 0.75rem; padding: 0.5rem 1rem; border: 1px solid var(--border); border-radius: 6px; background: var(--bg); cursor: pointer; }

.image-viewer { position: fixed; inset: 0; z-index: 100; display: flex; align-items: center; justify-content: center; }
.image-viewer[hidden] { display: none; }
.viewer-overlay { position: absolute; inset: 0; background: rgba(0,0,0,0.85); }
.image-viewer figure { position: relative; max-width: 85vw; max-height: 85vh; text-align: center; }
.viewer-image { max-width: 85vw; max-height: 80vh; border-radius: 4px; }
.viewer-caption { color: #ddd; }
.viewer-close, .viewer-prev, .viewer-next {
  position: relative;
  z-index: 101;
  background: none;
  border: none;
  color: #fff;
  font-size: 2.2rem;
  cursor: pointer;
  padding: 0 1rem;
}
.viewer-close { position: absolute; top: 1rem; right: 1.5rem; }

.work-entry { border-left: 2px solid var(--border); padding: 0 0 1.5rem 1.25rem; position: relative; }
.work-entry header h3 { display: inline; }
.work-position { margin-left: 0.5rem; color: var(--text-muted); }
.work-period { float: right; color: var(--text-muted); font-size: 0.85rem; }
.work-tech li { background: var(--bg-secondary); border-radius: 4px; padding: 0.1rem 0.5rem; font-size: 0.8rem; }
.project-trigger {
  margin: 0.5rem 0.5rem 0 0;
  padding: 0.3rem 0.7rem;
  border: 1px solid var(--border);
  border-radius: 999px;
  background: var(--bg);
  cursor: pointer;
}
.project-popup {
  position: absolute;
  z-index: 30;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 8px;
  box-shadow: var(--shadow-lg);
  padding: 1rem;
  max-width: 320px;
}
.popup-close { float: right; background: none; border: none; font-size: 1.1rem; cursor: pointer; }

.timeline-list { list-style: none; }
.timeline-entry { padding: 0.5rem 0; border-bottom: 1px solid var(--border); }
.timeline-date { color: var(--text-muted); font-size: 0.85rem; margin-right: 0.75rem; }
.timeline-title { font-weight: 600; }
.timeline-desc { color: var(--text-muted); }

.not-found { text-align: center; padding: 4rem 0; }

@media (max-width: 640px) {
  .two-column { grid-template-columns: 1fr; }
  .content { padding: 1.25rem; }
}
`

const jsContent = `(function () {
  "use strict";

  /* ---- legacy fragment routes: #posts/abc -> /posts/abc ---- */
  if (location.hash.length > 1) {
    var frag = location.hash.slice(1).replace(/^\/+|\/+$/g, "");
    if (frag === "home" || frag === "") {
      location.replace("/");
    } else if (frag === "posts" || frag.indexOf("posts/") === 0) {
      location.replace("/" + frag);
    }
  }

  /* ---- tag dropdown: toggles open, closes on outside click only ---- */
  var tagSelect = document.getElementById("tag-select");
  if (tagSelect) {
    var toggle = tagSelect.querySelector(".tag-select-toggle");
    var menu = tagSelect.querySelector(".tag-select-menu");
    toggle.addEventListener("click", function () {
      var open = !menu.hidden;
      menu.hidden = open;
      toggle.setAttribute("aria-expanded", String(!open));
    });
    document.addEventListener("click", function (e) {
      // Clicks inside the dropdown (toggle or menu) never close it.
      if (!tagSelect.contains(e.target)) {
        menu.hidden = true;
        toggle.setAttribute("aria-expanded", "false");
      }
    });
    // Checking a tag re-applies the filters immediately.
    menu.addEventListener("change", function () {
      document.getElementById("filter-bar").submit();
    });
  }

  var filterBar = document.getElementById("filter-bar");
  if (filterBar) {
    var sort = filterBar.querySelector("select[name=sort]");
    if (sort) {
      sort.addEventListener("change", function () { filterBar.submit(); });
    }
  }

  /* ---- card images: swap to placeholder on load failure ---- */
  var PLACEHOLDER = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 160 120'%3E%3Crect width='160' height='120' fill='%23e9ecef'/%3E%3Cpath d='M40 84l24-28 18 20 14-12 24 20z' fill='%23adb5bd'/%3E%3Ccircle cx='56' cy='44' r='10' fill='%23adb5bd'/%3E%3C/svg%3E";
  Array.prototype.forEach.call(document.querySelectorAll(".card-image img"), function (img) {
    img.addEventListener("error", function () {
      if (img.src !== PLACEHOLDER) img.src = PLACEHOLDER;
    });
  });

  /* ---- full-screen gallery viewer ---- */
  var viewer = document.getElementById("image-viewer");
  var dataEl = document.getElementById("viewer-images");
  if (viewer && dataEl) {
    var images = JSON.parse(dataEl.textContent);
    var current = 0;
    var imgEl = viewer.querySelector(".viewer-image");
    var captionEl = viewer.querySelector(".viewer-caption");

    function show(i) {
      // Wrap at both ends.
      current = (i + images.length) % images.length;
      imgEl.src = images[current].src;
      imgEl.alt = images[current].alt || "";
      captionEl.textContent = images[current].caption || "";
    }
    function open(i) { show(i); viewer.hidden = false; }
    function close() { viewer.hidden = true; }

    Array.prototype.forEach.call(document.querySelectorAll("[data-viewer-index]"), function (el) {
      el.addEventListener("click", function () {
        open(parseInt(el.getAttribute("data-viewer-index"), 10) || 0);
      });
    });

    viewer.querySelector(".viewer-overlay").addEventListener("click", close);
    viewer.querySelector(".viewer-close").addEventListener("click", close);
    viewer.querySelector(".viewer-prev").addEventListener("click", function () { show(current - 1); });
    viewer.querySelector(".viewer-next").addEventListener("click", function () { show(current + 1); });

    document.addEventListener("keydown", function (e) {
      if (viewer.hidden) return;
      switch (e.key) {
        case "Escape": close(); break;
        case "ArrowLeft":
        case "ArrowUp": show(current - 1); break;
        case "ArrowRight":
        case "ArrowDown": show(current + 1); break;
      }
    });
  }

  /* ---- project popups: outside click / Escape / close control ---- */
  var openPopup = null;
  var popupReturnFocus = null;

  function closePopup() {
    if (!openPopup) return;
    openPopup.hidden = true;
    openPopup = null;
    if (popupReturnFocus) {
      popupReturnFocus.focus();
      popupReturnFocus = null;
    }
  }

  Array.prototype.forEach.call(document.querySelectorAll(".project-trigger"), function (trigger) {
    trigger.addEventListener("click", function (e) {
      e.stopPropagation();
      var popup = document.getElementById(trigger.getAttribute("data-popup"));
      if (!popup) return;
      if (openPopup === popup) { closePopup(); return; }
      closePopup();
      popupReturnFocus = trigger;
      popup.hidden = false;
      openPopup = popup;
      var closeBtn = popup.querySelector(".popup-close");
      if (closeBtn) closeBtn.focus();
    });
  });
  Array.prototype.forEach.call(document.querySelectorAll(".popup-close"), function (btn) {
    btn.addEventListener("click", function (e) {
      e.stopPropagation();
      closePopup();
    });
  });
  document.addEventListener("click", function (e) {
    if (openPopup && !openPopup.contains(e.target)) closePopup();
  });
  document.addEventListener("keydown", function (e) {
    if (e.key === "Escape" && openPopup) closePopup();
  });

  /* ---- dev live reload ---- */
  if (document.body.dataset.livereload) {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    var sock = new WebSocket(proto + "//" + location.host + "/ws");
    sock.onmessage = function (msg) {
      if (msg.data === "reload") location.reload();
    };
  }
})();
`
