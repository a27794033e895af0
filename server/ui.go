package server

const uiIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>AI Tools</title>
  <link rel="stylesheet" href="/ui/styles.css" />
</head>
<body>
  <header class="topbar">
    <div class="title">AI Tools</div>
    <div class="subtitle" id="backend"></div>
  </header>

  <main class="grid">
    <aside class="panel">
      <div class="panelTitle">Endpoints</div>
      <div id="endpointList" class="list"></div>
    </aside>

    <section class="panel">
      <div class="panelTitle" id="endpointName">Select an endpoint</div>
      <div class="panelMeta" id="endpointDesc"></div>
      <div id="detail" class="detail"></div>

      <form id="callForm" class="form" hidden>
        <label id="textField" hidden>Text
          <textarea name="text" rows="3"></textarea>
        </label>
        <label id="jsonField" hidden>JSON
          <textarea name="json" rows="6" placeholder='{"prompt": "a cute cat"}'></textarea>
        </label>
        <label id="fileField" hidden>Files
          <input type="file" name="files" multiple />
        </label>
        <button type="submit" class="btn primary" id="btnSend">Send</button>
      </form>

      <div id="status" class="status"></div>
      <ul id="warnings" class="warnings"></ul>
      <div id="result" class="result"></div>
    </section>
  </main>

  <script src="/ui/app.js"></script>
</body>
</html>
`

const uiStylesCSS = `
:root{ --border:#d0d7de; --muted:#57606a; --accent:#0969da; }
body{ margin:0; font-family: system-ui, sans-serif; color:#1f2328; }
.topbar{ display:flex; align-items:baseline; gap:12px; padding:10px 16px; border-bottom:1px solid var(--border); }
.title{ font-weight:600; font-size:18px; }
.subtitle,.panelMeta{ color:var(--muted); font-size:13px; }
.grid{ display:grid; grid-template-columns: 260px 1fr; min-height: calc(100vh - 48px); }
.panel{ padding:12px 16px; border-right:1px solid var(--border); overflow:auto; }
.panelTitle{ font-weight:600; margin-bottom:6px; }
.list .item{ padding:6px 8px; border-radius:6px; cursor:pointer; }
.list .item:hover{ background:#f6f8fa; }
.list .item.active{ background:#ddf4ff; }
.detail pre{ background:#f6f8fa; padding:8px; overflow:auto; }
.form{ display:flex; flex-direction:column; gap:8px; margin:12px 0; max-width:720px; }
.form textarea{ width:100%; font-family: ui-monospace, monospace; }
.btn{ padding:6px 12px; border:1px solid var(--border); border-radius:6px; background:#f6f8fa; cursor:pointer; }
.btn.primary{ background:var(--accent); color:#fff; border-color:var(--accent); }
.status{ color:var(--muted); font-size:13px; }
.status.error{ color:#cf222e; }
.warnings{ color:#9a6700; font-size:13px; }
.result pre{ background:#f6f8fa; padding:8px; white-space:pre-wrap; }
.result img{ max-width:100%; }
`

const uiAppJS = `
(function(){
  const elList = document.getElementById('endpointList');
  const elName = document.getElementById('endpointName');
  const elDesc = document.getElementById('endpointDesc');
  const elDetail = document.getElementById('detail');
  const elForm = document.getElementById('callForm');
  const elStatus = document.getElementById('status');
  const elWarnings = document.getElementById('warnings');
  const elResult = document.getElementById('result');

  let current = null;
  let lastBlobURL = null;

  function setStatus(msg, isError){
    elStatus.textContent = msg || '';
    elStatus.className = isError ? 'status error' : 'status';
  }

  function releaseLast(){
    if (lastBlobURL && lastBlobURL.indexOf('/blobs/') === 0) {
      fetch(lastBlobURL, { method: 'DELETE' }).catch(function(){});
    }
    lastBlobURL = null;
  }

  function renderResult(res){
    releaseLast();
    elResult.innerHTML = '';
    if (!res) return;

    if (res.type === 'json' || res.type === 'text') {
      const pre = document.createElement('pre');
      pre.textContent = res.type === 'json' ? JSON.stringify(res.data, null, 2) : res.data;
      elResult.appendChild(pre);
      return;
    }

    lastBlobURL = res.data;
    if (res.type === 'image') {
      const img = document.createElement('img');
      img.src = res.data;
      img.alt = res.filename || 'result';
      elResult.appendChild(img);
      return;
    }

    const a = document.createElement('a');
    a.href = res.data;
    a.download = res.filename || 'download';
    a.textContent = 'Download ' + (res.filename || res.mimeType);
    a.className = 'btn';
    elResult.appendChild(a);
  }

  function renderWarnings(list){
    elWarnings.innerHTML = '';
    (list || []).forEach(function(w){
      const li = document.createElement('li');
      li.textContent = w;
      elWarnings.appendChild(li);
    });
  }

  async function getJSON(url){
    const resp = await fetch(url);
    const body = await resp.json();
    if (!body.ok) throw new Error(body.error || resp.statusText);
    return body.result;
  }

  async function selectEndpoint(id){
    const ep = await getJSON('/api/endpoints/' + encodeURIComponent(id));
    current = ep;
    Array.prototype.forEach.call(elList.children, function(el){
      el.classList.toggle('active', el.dataset.id === id);
    });
    elName.textContent = ep.name;
    elDesc.textContent = ep.description + ' (' + ep.method + ' ' + ep.path + ')';
    elDetail.innerHTML = ep.detail;

    const inputs = ep.inputs || [];
    document.getElementById('textField').hidden = inputs.indexOf('text') < 0;
    document.getElementById('jsonField').hidden = inputs.indexOf('json') < 0;
    document.getElementById('fileField').hidden = inputs.indexOf('file') < 0;
    elForm.reset();
    elForm.hidden = false;
    renderWarnings([]);
    renderResult(null);
    setStatus('');
  }

  async function loadEndpoints(){
    const list = await getJSON('/api/endpoints');
    elList.innerHTML = '';
    list.forEach(function(ep){
      const div = document.createElement('div');
      div.className = 'item';
      div.dataset.id = ep.id;
      div.textContent = ep.name;
      div.title = ep.description;
      div.addEventListener('click', function(){ selectEndpoint(ep.id).catch(function(e){ setStatus(e.message, true); }); });
      elList.appendChild(div);
    });
  }

  elForm.addEventListener('submit', async function(ev){
    ev.preventDefault();
    if (!current) return;
    setStatus('Sending...');
    try {
      const resp = await fetch('/api/call/' + encodeURIComponent(current.id), { method: 'POST', body: new FormData(elForm) });
      const body = await resp.json();
      renderWarnings(body.warnings);
      if (!body.ok) {
        setStatus(body.error || resp.statusText, true);
        return;
      }
      renderResult(body.result);
      setStatus('Done (' + body.result.mimeType + ')');
    } catch (e) {
      setStatus(e.message, true);
    }
  });

  window.addEventListener('beforeunload', releaseLast);

  loadEndpoints().then(function(){ setStatus('Ready.'); }).catch(function(e){ setStatus(e.message, true); });
})();
`
