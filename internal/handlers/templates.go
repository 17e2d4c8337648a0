package handlers

// indexHTML hosts the catalogue page and the browser client. The
// validation constants and predicates in the script mirror
// internal/domain so a compliant client rejects exactly what the
// server would.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Video Vault</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; background: #f5f5f5; color: #222; }
  header { background: #1f2937; color: #fff; padding: 1rem 2rem; display: flex; align-items: center; gap: 2rem; }
  header h1 { font-size: 1.2rem; margin: 0; }
  nav button { background: none; border: none; color: #cbd5e1; font-size: 1rem; cursor: pointer; padding: .4rem .8rem; }
  nav button.active { color: #fff; border-bottom: 2px solid #60a5fa; }
  main { max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
  .view { display: none; }
  .view.active { display: block; }
  table { width: 100%; border-collapse: collapse; background: #fff; }
  th, td { text-align: left; padding: .6rem .8rem; border-bottom: 1px solid #e5e7eb; }
  tr.playable { cursor: pointer; }
  tr.playing { background: #eff6ff; }
  video { width: 100%; margin-top: 1rem; background: #000; }
  .alert { padding: .6rem .8rem; margin: .8rem 0; border-radius: 4px; display: none; }
  .alert.error { display: block; background: #fee2e2; color: #991b1b; }
  .alert.success { display: block; background: #dcfce7; color: #166534; }
  ul#file-checks { list-style: none; padding: 0; }
  ul#file-checks li { padding: .3rem 0; }
  ul#file-checks li.ok::before { content: "\2713 "; color: #16a34a; }
  ul#file-checks li.bad::before { content: "\2717 "; color: #dc2626; }
  button.primary { background: #2563eb; color: #fff; border: none; padding: .6rem 1.2rem; border-radius: 4px; cursor: pointer; }
  button.primary:disabled { background: #93c5fd; cursor: default; }
</style>
</head>
<body>
<header>
  <h1>Video Vault</h1>
  <nav>
    <button id="nav-catalogue" class="active">Catalogue</button>
    <button id="nav-upload">Upload</button>
  </nav>
</header>
<main>
  <div id="alert" class="alert"></div>

  <section id="view-catalogue" class="view active">
    <table>
      <thead><tr><th>Name</th><th>Size</th></tr></thead>
      <tbody id="catalogue-rows">
        {{range .Entries}}
        <tr class="playable" data-url="{{.URL}}">
          <td>{{.Name}}</td><td>{{.SizeDisplay}}</td>
        </tr>
        {{else}}
        <tr><td colspan="2">No videos yet. Upload one to get started.</td></tr>
        {{end}}
      </tbody>
    </table>
    <video id="player" controls preload="none"></video>
  </section>

  <section id="view-upload" class="view">
    <p>Select one or more MP4 files (max 200 MiB each).</p>
    <input type="file" id="file-input" accept=".mp4" multiple>
    <ul id="file-checks"></ul>
    <button id="submit" class="primary" disabled>Upload</button>
  </section>
</main>
<script>
(function () {
  "use strict";

  // Mirror of the server-side validation policy. Keep in sync with
  // internal/domain.
  var ALLOWED_EXTENSION = ".mp4";
  var MAX_FILE_SIZE_BYTES = 209715200;

  function isExtensionAllowed(name) {
    var i = name.lastIndexOf(".");
    if (i < 0) return false;
    return name.slice(i).toLowerCase() === ALLOWED_EXTENSION;
  }

  function isSizeAllowed(size) {
    return size > 0 && size <= MAX_FILE_SIZE_BYTES;
  }

  var views = { catalogue: el("view-catalogue"), upload: el("view-upload") };
  var navs = { catalogue: el("nav-catalogue"), upload: el("nav-upload") };
  var alertBox = el("alert");
  var fileInput = el("file-input");
  var checks = el("file-checks");
  var submit = el("submit");
  var player = el("player");
  var inFlight = false;
  var activeRow = null;

  function el(id) { return document.getElementById(id); }

  function showView(name) {
    clearAlert();
    Object.keys(views).forEach(function (key) {
      views[key].classList.toggle("active", key === name);
      navs[key].classList.toggle("active", key === name);
    });
  }

  function clearAlert() { alertBox.className = "alert"; alertBox.textContent = ""; }

  function showAlert(kind, message) {
    alertBox.className = "alert " + kind;
    alertBox.textContent = message;
  }

  navs.catalogue.addEventListener("click", function () { showView("catalogue"); });
  navs.upload.addEventListener("click", function () { showView("upload"); });

  fileInput.addEventListener("change", function () {
    clearAlert();
    checks.innerHTML = "";
    var allOk = fileInput.files.length > 0;
    Array.prototype.forEach.call(fileInput.files, function (file) {
      var li = document.createElement("li");
      var ok = isExtensionAllowed(file.name) && isSizeAllowed(file.size);
      li.className = ok ? "ok" : "bad";
      li.textContent = file.name;
      if (!isExtensionAllowed(file.name)) {
        li.textContent += " — only " + ALLOWED_EXTENSION + " files are accepted";
      } else if (!isSizeAllowed(file.size)) {
        li.textContent += file.size === 0 ? " — file is empty" : " — exceeds the 200 MiB limit";
      }
      checks.appendChild(li);
      allOk = allOk && ok;
    });
    submit.disabled = !allOk;
  });

  submit.addEventListener("click", function () {
    if (inFlight || fileInput.files.length === 0) return;
    inFlight = true;
    submit.disabled = true;
    clearAlert();

    var form = new FormData();
    Array.prototype.forEach.call(fileInput.files, function (file) {
      form.append("files", file);
    });

    fetch("/api/video/upload", { method: "POST", body: form })
      .then(function (res) { return res.json(); })
      .then(function (body) {
        if (body.success) {
          showAlert("success", body.message + " Reloading…");
          setTimeout(function () { window.location.reload(); }, 1500);
        } else {
          inFlight = false;
          submit.disabled = false;
          showAlert("error", body.message || "Upload failed.");
        }
      })
      .catch(function () {
        inFlight = false;
        submit.disabled = false;
        showAlert("error", "Upload failed. Please try again.");
      });
  });

  el("catalogue-rows").addEventListener("click", function (ev) {
    var row = ev.target.closest("tr.playable");
    if (!row) return;
    if (activeRow) activeRow.classList.remove("playing");
    activeRow = row;
    row.classList.add("playing");
    player.src = row.dataset.url;
    player.play().catch(function () {
      showAlert("error", "Could not play this video. It may still be uploading or is not a valid MP4.");
    });
  });
})();
</script>
</body>
</html>
`
