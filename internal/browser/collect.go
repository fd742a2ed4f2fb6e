package browser

// imageSignalsJS runs inside the page and returns one signal record per
// candidate image element: <img> (including lazy-load attribute variants),
// <source> inside <picture> (last srcset candidate, typically the largest),
// and elements styled with a background-image.
const imageSignalsJS = `() => {
  const results = [];

  const elements = Array.from(
    document.querySelectorAll('img, picture source, [style*="background-image"]')
  );

  for (const el of elements) {
    const rect = el.getBoundingClientRect();
    let src = "";

    if (el.tagName === "IMG") {
      src =
        el.currentSrc ||
        el.src ||
        el.getAttribute('data-src') ||
        el.getAttribute('data-original') ||
        el.getAttribute('data-zoom-image') ||
        el.getAttribute('data-lazy') ||
        "";
    } else if (el.tagName === "SOURCE") {
      const srcset = el.srcset || el.getAttribute("srcset") || "";
      if (srcset) {
        const parts = srcset.split(",").map(s => s.trim()).filter(Boolean);
        if (parts.length > 0) {
          src = parts[parts.length - 1].split(" ")[0];
        }
      }
    } else {
      const style = window.getComputedStyle(el);
      const bg = style.backgroundImage || el.style.backgroundImage || "";
      const match = bg.match(/url\(["']?(.*?)["']?\)/i);
      if (match && match[1]) {
        src = match[1];
      }
    }

    const naturalWidth = (el.naturalWidth || 0);
    const naturalHeight = (el.naturalHeight || 0);
    const layoutWidth = rect.width || 0;
    const layoutHeight = rect.height || 0;

    results.push({
      src,
      width: naturalWidth || layoutWidth,
      height: naturalHeight || layoutHeight,
      alt: el.alt || "",
      className: (typeof el.className === "string" && el.className) || "",
      inPicture: !!el.closest && !!el.closest("picture"),
      top: rect.top || 0,
    });
  }

  return JSON.stringify(results);
}`

// sizeTokensJS collects raw size-token candidates from every DOM source the
// size validator consumes: visible button text, aria-labels, radio/button
// input attributes, and dropdown options.
const sizeTokensJS = `() => {
  const tokens = [];

  for (const el of document.querySelectorAll('button, .size, .size-button, .swatch__option')) {
    const t = (el.innerText || "").trim();
    if (t) tokens.push(t);
  }

  for (const el of document.querySelectorAll('button[aria-label]')) {
    const v = el.getAttribute('aria-label');
    if (v) tokens.push(v);
  }

  for (const el of document.querySelectorAll("input[type='radio'], input[type='button']")) {
    for (const attr of ['value', 'data-value', 'data-option', 'aria-label']) {
      const v = el.getAttribute(attr);
      if (v) tokens.push(v);
    }
  }

  for (const el of document.querySelectorAll('select option')) {
    const t = (el.innerText || "").trim();
    if (t) tokens.push(t);
  }

  return JSON.stringify(tokens);
}`

const scrollByViewportJS = `() => window.scrollBy(0, window.innerHeight)`
